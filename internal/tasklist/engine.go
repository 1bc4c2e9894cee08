package tasklist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

// ErrDeleteCancelled is returned by Delete when the user declines.
var ErrDeleteCancelled = errors.New("delete cancelled")

// DeletePrompt is the question asked before a delete.
const DeletePrompt = "Are you sure you want to delete this task?"

// FetchError is a failed snapshot load. The previous snapshot is kept.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch tasks: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// API is the part of the Task API the engine calls.
type API interface {
	List(ctx context.Context) ([]models.Task, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

type Option func(*Engine)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine owns the list State and performs the fetches and deletes that
// change it. It is safe for concurrent use; overlapping loads are
// resolved by generation, so the latest one started wins.
type Engine struct {
	api    API
	logger zerolog.Logger

	mu    sync.Mutex
	state State
	gen   uint64
}

func NewEngine(api API, pageSize int, opts ...Option) *Engine {
	e := &Engine{
		api:    api,
		logger: zerolog.Nop(),
		state:  NewState(pageSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// View returns the current visible page.
func (e *Engine) View() Page {
	return View(e.State())
}

// Dispatch applies a to the current state and returns the result.
func (e *Engine) Dispatch(a Action) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Reduce(e.state, a)
	return e.state
}

// Load fetches the whole collection and replaces the snapshot. On
// failure the previous snapshot is kept and a *FetchError is returned;
// nothing is retried.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.state = Reduce(e.state, LoadStarted{Gen: gen})
	e.mu.Unlock()

	tasks, err := e.api.List(ctx)
	if err != nil {
		e.logger.Error().
			Err(err).
			Uint64("generation", gen).
			Msg("failed to fetch tasks")
		e.Dispatch(LoadFailed{Gen: gen, Err: err})
		return &FetchError{Err: err}
	}

	s := e.Dispatch(LoadSucceeded{Gen: gen, Tasks: tasks})
	if s.Generation != gen {
		e.logger.Debug().
			Uint64("generation", gen).
			Uint64("latest", s.Generation).
			Msg("discarded stale tasks")
		return nil
	}

	e.logger.Debug().
		Int("count", len(tasks)).
		Uint64("generation", gen).
		Msg("fetched tasks")
	return nil
}

// MutationOccurred signals that a task was created, updated or deleted,
// and reloads the snapshot.
func (e *Engine) MutationOccurred(ctx context.Context) error {
	return e.Load(ctx)
}

// Delete asks confirm, then deletes the task and reloads. A declined
// or missing confirmation returns ErrDeleteCancelled without calling
// the API. A failed delete leaves the snapshot as it was and sets a
// notice.
func (e *Engine) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return ErrDeleteCancelled
	}

	err := e.api.Delete(ctx, id)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		e.Dispatch(DeleteFailed{ID: id, Err: err})
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	e.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	e.Dispatch(DeleteSucceeded{ID: id})
	return e.MutationOccurred(ctx)
}
