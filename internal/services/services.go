package services

import (
	"context"
	"errors"
	"strings"

	"github.com/adanyl0v/taskboard/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTask  = errors.New("invalid task")
)

type TaskService interface {
	// List returns every task, most recently created first.
	//
	// An empty store yields an empty slice and a nil error; deciding
	// whether that is an error is up to the caller.
	List(ctx context.Context) ([]*models.Task, error)

	// GetByID returns the task with the given ID.
	//
	// It returns ErrTaskNotFound if no such task exists, including
	// when the ID isn't well-formed for the underlying store.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// Create inserts a new task, assigning its ID and timestamps.
	//
	// An empty status is stored as models.StatusPending. It returns
	// ErrInvalidTask if the store rejects the fields.
	Create(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// Update replaces all four mutable fields of the task.
	//
	// This is a full replace, not a patch: every field in params is
	// written, so callers must resend values they don't intend to
	// change. An empty description clears it. It returns
	// ErrTaskNotFound if the task doesn't exist.
	Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// Delete removes the task. It returns ErrTaskNotFound if the
	// task doesn't exist.
	Delete(ctx context.Context, id string) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

type CreateTaskParams struct {
	Title       string
	Description string
	Status      models.Status
	DueDate     string
}

type UpdateTaskParams struct {
	ID          string
	Title       string
	Description string
	Status      models.Status
	DueDate     string
}

func (p CreateTaskParams) validate() error {
	return validateFields(p.Title, p.Status.OrDefault(), p.DueDate)
}

func (p UpdateTaskParams) validate() error {
	return validateFields(p.Title, p.Status, p.DueDate)
}

func validateFields(title string, status models.Status, dueDate string) error {
	if strings.TrimSpace(title) == "" || dueDate == "" || !status.Valid() {
		return ErrInvalidTask
	}
	return nil
}
