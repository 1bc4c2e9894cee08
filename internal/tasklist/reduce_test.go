package tasklist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/taskboard/internal/models"
)

func loadedState(t *testing.T, tasks []models.Task, pageSize int) State {
	t.Helper()
	s := NewState(pageSize)
	s = Reduce(s, LoadStarted{Gen: 1})
	s = Reduce(s, LoadSucceeded{Gen: 1, Tasks: tasks})
	return s
}

func manyTasks(n int) []models.Task {
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = task(fmt.Sprint(i), fmt.Sprintf("Task %d", i), models.StatusPending,
			fmt.Sprintf("2024-01-%02d", i%28+1))
	}
	return tasks
}

func TestNewState(t *testing.T) {
	s := NewState(0)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Equal(t, 1, s.Page)
	assert.True(t, s.SortAsc)
	assert.Equal(t, PhaseNotLoaded, s.Phase)
	assert.Empty(t, s.Snapshot)
}

func TestReduceFiltersResetPage(t *testing.T) {
	s := loadedState(t, manyTasks(20), 6)
	s = Reduce(s, PageRequested{Page: 3})
	assert.Equal(t, 3, s.Page)

	tests := []struct {
		name   string
		action Action
	}{
		{"search", SearchChanged{Search: "task"}},
		{"status filter", StatusFilterChanged{Status: models.StatusPending}},
		{"reset", FiltersReset{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := Reduce(s, tc.action)
			assert.Equal(t, 1, next.Page)
			assert.Equal(t, 3, s.Page, "input state untouched")
		})
	}
}

func TestReduceFiltersReset(t *testing.T) {
	s := loadedState(t, manyTasks(3), 6)
	s = Reduce(s, SearchChanged{Search: "x"})
	s = Reduce(s, StatusFilterChanged{Status: models.StatusCompleted})

	s = Reduce(s, FiltersReset{})
	assert.Empty(t, s.Search)
	assert.Empty(t, s.StatusFilter)
}

func TestReduceSortToggledKeepsPage(t *testing.T) {
	s := loadedState(t, manyTasks(20), 6)
	s = Reduce(s, PageRequested{Page: 2})

	s = Reduce(s, SortToggled{})
	assert.False(t, s.SortAsc)
	assert.Equal(t, 2, s.Page)

	s = Reduce(s, SortToggled{})
	assert.True(t, s.SortAsc)
}

func TestReducePageRequestedClamps(t *testing.T) {
	s := loadedState(t, manyTasks(13), 6)

	assert.Equal(t, 3, Reduce(s, PageRequested{Page: 10}).Page)
	assert.Equal(t, 1, Reduce(s, PageRequested{Page: 0}).Page)
	assert.Equal(t, 2, Reduce(s, PageRequested{Page: 2}).Page)

	empty := loadedState(t, nil, 6)
	assert.Equal(t, 1, Reduce(empty, PageRequested{Page: 2}).Page)
}

func TestReducePageSizeChanged(t *testing.T) {
	s := loadedState(t, manyTasks(20), 6)
	s = Reduce(s, PageRequested{Page: 4})

	s = Reduce(s, PageSizeChanged{Size: DrawerPageSize})
	assert.Equal(t, DrawerPageSize, s.PageSize)
	assert.Equal(t, 3, s.Page, "clamped to the new page count")
	assert.Len(t, View(s).Items, 4)

	s = Reduce(s, PageSizeChanged{Size: 0})
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Equal(t, 3, s.Page)
}

func TestReduceLoadSucceeded(t *testing.T) {
	tasks := manyTasks(4)
	s := NewState(6)

	s = Reduce(s, LoadStarted{Gen: 1})
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, uint64(1), s.Generation)

	s = Reduce(s, LoadSucceeded{Gen: 1, Tasks: tasks})
	assert.Equal(t, PhaseLoaded, s.Phase)
	assert.Equal(t, tasks, s.Snapshot)
	assert.NoError(t, s.LastError)

	tasks[0].Title = "changed"
	assert.Equal(t, "Task 0", s.Snapshot[0].Title, "snapshot is a copy")
}

func TestReduceLoadSucceededClampsPage(t *testing.T) {
	s := loadedState(t, manyTasks(20), 6)
	s = Reduce(s, PageRequested{Page: 4})
	assert.Equal(t, 4, s.Page)

	s = Reduce(s, LoadStarted{Gen: 2})
	s = Reduce(s, LoadSucceeded{Gen: 2, Tasks: manyTasks(7)})
	assert.Equal(t, 2, s.Page)
}

func TestReduceLoadFailedKeepsSnapshot(t *testing.T) {
	tasks := manyTasks(3)
	s := loadedState(t, tasks, 6)

	fetchErr := errors.New("connection refused")
	s = Reduce(s, LoadStarted{Gen: 2})
	s = Reduce(s, LoadFailed{Gen: 2, Err: fetchErr})

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, tasks, s.Snapshot)
	assert.ErrorIs(t, s.LastError, fetchErr)
	assert.Equal(t, "Failed to fetch tasks: connection refused", s.Notice)
}

func TestReduceDiscardsStaleOutcomes(t *testing.T) {
	s := NewState(6)
	s = Reduce(s, LoadStarted{Gen: 1})
	s = Reduce(s, LoadStarted{Gen: 2})

	stale := Reduce(s, LoadSucceeded{Gen: 1, Tasks: manyTasks(5)})
	assert.Equal(t, s, stale)

	stale = Reduce(s, LoadFailed{Gen: 1, Err: errors.New("late")})
	assert.Equal(t, s, stale)

	assert.Equal(t, s, Reduce(s, LoadStarted{Gen: 1}), "older start ignored")

	fresh := Reduce(s, LoadSucceeded{Gen: 2, Tasks: manyTasks(2)})
	assert.Len(t, fresh.Snapshot, 2)
	assert.Equal(t, PhaseLoaded, fresh.Phase)
}

func TestReduceNotices(t *testing.T) {
	s := NewState(6)

	s = Reduce(s, DeleteSucceeded{ID: "1"})
	assert.Equal(t, "Task deleted successfully!", s.Notice)

	s = Reduce(s, DeleteFailed{ID: "1", Err: errors.New("boom")})
	assert.Equal(t, "Failed to delete task: boom", s.Notice)

	s = Reduce(s, TaskSaved{Created: true})
	assert.Equal(t, "Task created successfully!", s.Notice)

	s = Reduce(s, TaskSaved{})
	assert.Equal(t, "Task updated successfully!", s.Notice)

	s = Reduce(s, MutationFailed{Err: errors.New("bad title")})
	assert.Equal(t, "Failed to save task: bad title", s.Notice)

	s = Reduce(s, TaskNotFound{ID: "1"})
	assert.Equal(t, "Task not found", s.Notice)

	s = Reduce(s, TaskFetchFailed{ID: "1", Err: errors.New("timeout")})
	assert.Equal(t, "Failed to fetch task: timeout", s.Notice)

	s = Reduce(s, NoticeDismissed{})
	assert.Empty(t, s.Notice)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "not-loaded", PhaseNotLoaded.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "loaded", PhaseLoaded.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
