package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adanyl0v/taskboard/internal/models"
)

// sqliteTask is the table row of a task.
type sqliteTask struct {
	ID          string    `gorm:"primarykey;size:36"`
	Title       string    `gorm:"not null;check:title <> ''"`
	Description string    `gorm:"not null;default:''"`
	Status      string    `gorm:"not null;default:'Pending';check:status IN ('Pending', 'In Progress', 'Completed')"`
	DueDate     string    `gorm:"not null;check:due_date <> ''"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (sqliteTask) TableName() string {
	return "tasks"
}

func (r *sqliteTask) toModel() *models.Task {
	return &models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      models.Status(r.Status),
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type sqliteTaskServiceImpl struct {
	logger zerolog.Logger
	db     *gorm.DB
}

// NewSQLiteTaskService creates the tasks table if needed and returns a
// TaskService backed by db.
func NewSQLiteTaskService(logger zerolog.Logger, db *gorm.DB) (TaskService, error) {
	err := db.AutoMigrate(&sqliteTask{})
	if err != nil {
		return nil, fmt.Errorf("migrate tasks table: %w", err)
	}

	return &sqliteTaskServiceImpl{
		logger: logger,
		db:     db,
	}, nil
}

func (s *sqliteTaskServiceImpl) List(ctx context.Context) ([]*models.Task, error) {
	var rows []sqliteTask
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, fmt.Errorf("select tasks: %w", err)
	}

	tasks := make([]*models.Task, len(rows))
	for i := range rows {
		tasks[i] = rows[i].toModel()
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *sqliteTaskServiceImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var row sqliteTask
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task")
		return nil, fmt.Errorf("select task %s: %w", id, err)
	}
	return row.toModel(), nil
}

func (s *sqliteTaskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now().UTC()
	row := sqliteTask{
		ID:          taskUUID.String(),
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status.OrDefault().String(),
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.logger.Info().
		Str("task_id", row.ID).
		Msg("created task")
	return row.toModel(), nil
}

func (s *sqliteTaskServiceImpl) Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	var task *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A map writes every column, including empty strings, which
		// Updates with a struct would skip.
		result := tx.Model(&sqliteTask{}).
			Where("id = ?", params.ID).
			Updates(map[string]any{
				"title":       params.Title,
				"description": params.Description,
				"status":      params.Status.String(),
				"due_date":    params.DueDate,
				"updated_at":  time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}

		var row sqliteTask
		err := tx.First(&row, "id = ?", params.ID).Error
		if err != nil {
			return err
		}
		task = row.toModel()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
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
	return task, nil
}

func (s *sqliteTaskServiceImpl) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&sqliteTask{}, "id = ?", id)
	if result.Error != nil {
		s.logger.Error().
			Err(result.Error).
			Str("task_id", id).
			Msg("failed to delete task")
		return fmt.Errorf("delete task %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
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

func (s *sqliteTaskServiceImpl) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
