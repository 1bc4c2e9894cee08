package tasklist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/models"
)

const (
	testTimeout = time.Second
	testTick    = 5 * time.Millisecond
)

type listResult struct {
	tasks []models.Task
	err   error
}

type fakeAPI struct {
	mu        sync.Mutex
	results   []listResult
	gates     []chan struct{}
	listCalls int
	deleted   []string
	deleteErr error
}

func (f *fakeAPI) List(_ context.Context) ([]models.Task, error) {
	f.mu.Lock()
	i := f.listCalls
	f.listCalls++
	var gate chan struct{}
	if i < len(f.gates) {
		gate = f.gates[i]
	}
	r := f.results[min(i, len(f.results)-1)]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return r.tasks, r.err
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func answer(yes bool) ConfirmFunc {
	return func(prompt string) bool {
		return yes
	}
}

func TestEngineLoad(t *testing.T) {
	tasks := manyTasks(8)
	api := &fakeAPI{results: []listResult{{tasks: tasks}}}
	e := NewEngine(api, 6)

	assert.Equal(t, PhaseNotLoaded, e.State().Phase)
	require.NoError(t, e.Load(context.Background()))

	s := e.State()
	assert.Equal(t, PhaseLoaded, s.Phase)
	assert.Len(t, s.Snapshot, 8)

	page := e.View()
	assert.Len(t, page.Items, 6)
	assert.Equal(t, 2, page.PageCount)
}

func TestEngineLoadFailureKeepsSnapshot(t *testing.T) {
	fetchErr := errors.New("server unreachable")
	api := &fakeAPI{results: []listResult{
		{tasks: manyTasks(3)},
		{err: fetchErr},
	}}
	e := NewEngine(api, 6)

	require.NoError(t, e.Load(context.Background()))
	err := e.Load(context.Background())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, fetchErr)

	s := e.State()
	assert.Equal(t, PhaseError, s.Phase)
	assert.Len(t, s.Snapshot, 3)
	assert.Contains(t, s.Notice, "server unreachable")
	assert.Equal(t, 2, api.calls(), "no retry")
}

func TestEngineDiscardsStaleLoad(t *testing.T) {
	slow := make(chan struct{})
	api := &fakeAPI{
		results: []listResult{
			{tasks: manyTasks(1)},
			{tasks: manyTasks(5)},
		},
		gates: []chan struct{}{slow},
	}
	e := NewEngine(api, 6)

	done := make(chan error, 1)
	go func() {
		done <- e.Load(context.Background())
	}()

	require.Eventually(t, func() bool { return api.calls() == 1 }, testTimeout, testTick)

	require.NoError(t, e.Load(context.Background()))
	assert.Len(t, e.State().Snapshot, 5)

	close(slow)
	require.NoError(t, <-done)

	s := e.State()
	assert.Len(t, s.Snapshot, 5, "older reply must not overwrite newer one")
	assert.Equal(t, uint64(2), s.Generation)
	assert.Equal(t, PhaseLoaded, s.Phase)
}

func TestEngineDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		api := &fakeAPI{results: []listResult{{tasks: manyTasks(2)}}}
		e := NewEngine(api, 6)
		require.NoError(t, e.Load(context.Background()))

		err := e.Delete(context.Background(), "1", answer(false))
		assert.ErrorIs(t, err, ErrDeleteCancelled)
		assert.Empty(t, api.deleted)
		assert.Equal(t, 1, api.calls())
	})

	t.Run("no confirmer", func(t *testing.T) {
		api := &fakeAPI{results: []listResult{{}}}
		e := NewEngine(api, 6)

		assert.ErrorIs(t, e.Delete(context.Background(), "1", nil), ErrDeleteCancelled)
		assert.Empty(t, api.deleted)
	})

	t.Run("prompt", func(t *testing.T) {
		api := &fakeAPI{results: []listResult{{}}}
		e := NewEngine(api, 6)

		var asked string
		_ = e.Delete(context.Background(), "1", ConfirmFunc(func(prompt string) bool {
			asked = prompt
			return false
		}))
		assert.Equal(t, DeletePrompt, asked)
	})

	t.Run("failed", func(t *testing.T) {
		deleteErr := errors.New("forbidden")
		api := &fakeAPI{
			results:   []listResult{{tasks: manyTasks(2)}},
			deleteErr: deleteErr,
		}
		e := NewEngine(api, 6)
		require.NoError(t, e.Load(context.Background()))

		err := e.Delete(context.Background(), "1", answer(true))
		assert.ErrorIs(t, err, deleteErr)

		s := e.State()
		assert.Len(t, s.Snapshot, 2)
		assert.Equal(t, "Failed to delete task: forbidden", s.Notice)
		assert.Equal(t, 1, api.calls(), "no reload after a failed delete")
	})

	t.Run("succeeded", func(t *testing.T) {
		tasks := manyTasks(2)
		api := &fakeAPI{results: []listResult{
			{tasks: tasks},
			{tasks: tasks[1:]},
		}}
		e := NewEngine(api, 6)
		require.NoError(t, e.Load(context.Background()))

		require.NoError(t, e.Delete(context.Background(), "0", answer(true)))
		assert.Equal(t, []string{"0"}, api.deleted)
		assert.Equal(t, 2, api.calls())

		s := e.State()
		assert.Len(t, s.Snapshot, 1)
		assert.Equal(t, "Task deleted successfully!", s.Notice)
	})
}

func TestEngineMutationOccurredReloads(t *testing.T) {
	api := &fakeAPI{results: []listResult{
		{tasks: manyTasks(1)},
		{tasks: manyTasks(2)},
	}}
	e := NewEngine(api, 6)

	require.NoError(t, e.Load(context.Background()))
	require.NoError(t, e.MutationOccurred(context.Background()))

	assert.Len(t, e.State().Snapshot, 2)
	assert.Equal(t, 2, api.calls())
}

func TestEngineDispatch(t *testing.T) {
	api := &fakeAPI{results: []listResult{{tasks: sampleSnapshot}}}
	e := NewEngine(api, 2)
	require.NoError(t, e.Load(context.Background()))

	e.Dispatch(SearchChanged{Search: "report"})
	e.Dispatch(PageRequested{Page: 2})
	assert.Equal(t, []string{"4"}, ids(e.View().Items))

	s := e.Dispatch(StatusFilterChanged{Status: models.StatusCompleted})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, []string{"2"}, ids(e.View().Items))
}
