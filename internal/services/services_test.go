package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/models"
)

// testTaskService runs the contract every TaskService must satisfy. The
// store must be empty.
func testTaskService(t *testing.T, svc TaskService) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		tasks, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	var created *models.Task
	t.Run("create then get round-trips", func(t *testing.T) {
		var err error
		created, err = svc.Create(ctx, CreateTaskParams{
			Title:       "A",
			Description: "",
			Status:      models.StatusPending,
			DueDate:     "2024-01-01",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "A", got.Title)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, models.StatusPending, got.Status)
		assert.Equal(t, "2024-01-01", got.DueDate)
	})

	t.Run("status defaults to pending", func(t *testing.T) {
		task, err := svc.Create(ctx, CreateTaskParams{Title: "B", DueDate: "2024-01-02"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, task.Status)
	})

	t.Run("list is newest first", func(t *testing.T) {
		tasks, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "B", tasks[0].Title)
		assert.Equal(t, "A", tasks[1].Title)
	})

	t.Run("create rejects invalid fields", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTaskParams{DueDate: "2024-01-01"})
		assert.ErrorIs(t, err, ErrInvalidTask)

		_, err = svc.Create(ctx, CreateTaskParams{Title: "A"})
		assert.ErrorIs(t, err, ErrInvalidTask)

		_, err = svc.Create(ctx, CreateTaskParams{Title: "   ", DueDate: "2024-01-01"})
		assert.ErrorIs(t, err, ErrInvalidTask)

		_, err = svc.Create(ctx, CreateTaskParams{Title: "A", DueDate: "2024-01-01", Status: "Done"})
		assert.ErrorIs(t, err, ErrInvalidTask)
	})

	t.Run("update replaces every field", func(t *testing.T) {
		require.NotNil(t, created)

		withDescription, err := svc.Update(ctx, UpdateTaskParams{
			ID:          created.ID,
			Title:       "A",
			Description: "details",
			Status:      models.StatusInProgress,
			DueDate:     "2024-01-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "details", withDescription.Description)

		updated, err := svc.Update(ctx, UpdateTaskParams{
			ID:      created.ID,
			Title:   "A2",
			Status:  models.StatusCompleted,
			DueDate: "2024-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "A2", updated.Title)
		assert.Equal(t, "", updated.Description)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.Equal(t, "2024-03-01", updated.DueDate)
		assert.Equal(t, created.ID, updated.ID)

		tasks, err := svc.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			if task.ID == created.ID {
				assert.Equal(t, models.StatusCompleted, task.Status)
			}
		}
	})

	t.Run("delete removes the task", func(t *testing.T) {
		require.NotNil(t, created)

		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err := svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)

		tasks, err := svc.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			assert.NotEqual(t, created.ID, task.ID)
		}

		assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrTaskNotFound)

		_, err = svc.Update(ctx, UpdateTaskParams{
			ID:      created.ID,
			Title:   "A",
			Status:  models.StatusPending,
			DueDate: "2024-01-01",
		})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, svc.Ping(ctx))
	})
}
