package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/adanyl0v/taskboard/internal/models"
)

// mongoTask is the document shape of a task.
type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	DueDate     string             `bson:"dueDate"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *mongoTask) toModel() *models.Task {
	return &models.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      models.Status(d.Status),
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type mongoTaskServiceImpl struct {
	logger     zerolog.Logger
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoTaskService(
	logger zerolog.Logger,
	client *mongo.Client,
	database string,
	collection string,
) TaskService {
	return &mongoTaskServiceImpl{
		logger:     logger,
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (s *mongoTaskServiceImpl) List(ctx context.Context) ([]*models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to find tasks")
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	tasks := make([]*models.Task, 0)
	for cursor.Next(ctx) {
		var doc mongoTask
		err = cursor.Decode(&doc)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to decode task")
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, doc.toModel())
	}

	err = cursor.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over cursor")
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("found tasks")
	return tasks, nil
}

func (s *mongoTaskServiceImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	var doc mongoTask
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Debug().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to find task")
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (s *mongoTaskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := mongoTask{
		ID:          primitive.NewObjectID(),
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status.OrDefault().String(),
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.logger.Info().
		Str("task_id", doc.ID.Hex()).
		Msg("created task")
	return doc.toModel(), nil
}

func (s *mongoTaskServiceImpl) Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(params.ID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       params.Title,
		"description": params.Description,
		"status":      params.Status.String(),
		"dueDate":     params.DueDate,
		"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTask
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Debug().
				Str("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, fmt.Errorf("update task %s: %w", params.ID, err)
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Msg("updated task")
	return doc.toModel(), nil
}

func (s *mongoTaskServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrTaskNotFound
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		s.logger.Debug().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *mongoTaskServiceImpl) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
