package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

type postgresTaskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &postgresTaskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

// EnsurePostgresSchema creates the tasks table if it doesn't exist.
func EnsurePostgresSchema(ctx context.Context, pgPool *pgxpool.Pool) error {
	const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id          UUID PRIMARY KEY,
    title       TEXT        NOT NULL CHECK (title <> ''),
    description TEXT        NOT NULL DEFAULT '',
    status      TEXT        NOT NULL DEFAULT 'Pending'
                            CHECK (status IN ('Pending', 'In Progress', 'Completed')),
    due_date    TEXT        NOT NULL CHECK (due_date <> ''),
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
)
`
	_, err := pgPool.Exec(ctx, createTasksTableQuery)
	return err
}

func (s *postgresTaskServiceImpl) List(ctx context.Context) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       title,
       description,
       status,
       due_date,
       created_at,
       updated_at
FROM tasks
ORDER BY created_at DESC, id DESC
`
	rows, err := s.pgPool.Query(ctx, selectTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := new(models.Task)
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *postgresTaskServiceImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if !isTaskUUID(id) {
		return nil, ErrTaskNotFound
	}

	const selectTaskByIDQuery = `
SELECT id,
       title,
       description,
       status,
       due_date,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	task := new(models.Task)
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		id,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
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

	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("selected task")
	return task, nil
}

func (s *postgresTaskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
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

	now := time.Now().UTC().Truncate(time.Microsecond)
	task := &models.Task{
		ID:          taskUUID.String(),
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status.OrDefault(),
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   status,
                   due_date,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			s.logger.Warn().
				Err(err).
				Msg("task rejected by constraint")
			return nil, ErrInvalidTask
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *postgresTaskServiceImpl) Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if !isTaskUUID(params.ID) {
		return nil, ErrTaskNotFound
	}

	task := &models.Task{
		ID:          params.ID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		DueDate:     params.DueDate,
		UpdatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    status = $3,
    due_date = $4,
    updated_at = $5
WHERE id = $6
RETURNING created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
	).Scan(&task.CreatedAt)
	if err != nil {
		if isNotFound(err) {
			s.logger.Debug().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}
		if isConstraintViolation(err) {
			s.logger.Warn().
				Err(err).
				Str("task_id", task.ID).
				Msg("task rejected by constraint")
			return nil, ErrInvalidTask
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, fmt.Errorf("update task %s: %w", task.ID, err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *postgresTaskServiceImpl) Delete(ctx context.Context, id string) error {
	if !isTaskUUID(id) {
		return ErrTaskNotFound
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		id,
	)
	if err != nil {
		if isNotFound(err) {
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
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

func (s *postgresTaskServiceImpl) Ping(ctx context.Context) error {
	return s.pgPool.Ping(ctx)
}

func isTaskUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isNotFound reports a missing row, or an ID that isn't a valid UUID
// and so can't name any row.
func isNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.InvalidTextRepresentation
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.CheckViolation ||
		pgErr.Code == pgerrcode.NotNullViolation
}
