package tasklist

import (
	"fmt"
	"slices"

	"github.com/adanyl0v/taskboard/internal/models"
)

// Action is an event that changes the list state.
type Action interface {
	isAction()
}

type (
	SearchChanged struct{ Search string }

	// StatusFilterChanged sets the filter; an empty Status clears it.
	StatusFilterChanged struct{ Status models.Status }

	// FiltersReset clears both search and status filter.
	FiltersReset struct{}

	SortToggled struct{}

	PageRequested struct{ Page int }

	// PageSizeChanged switches the page size; a non-positive Size
	// restores DefaultPageSize.
	PageSizeChanged struct{ Size int }

	LoadStarted struct{ Gen uint64 }

	LoadSucceeded struct {
		Gen   uint64
		Tasks []models.Task
	}

	LoadFailed struct {
		Gen uint64
		Err error
	}

	DeleteSucceeded struct{ ID string }

	DeleteFailed struct {
		ID  string
		Err error
	}

	// TaskSaved reports a successful create (Created) or update.
	TaskSaved struct{ Created bool }

	// MutationFailed reports a failed create or update.
	MutationFailed struct{ Err error }

	// TaskNotFound reports that a task picked from the snapshot no
	// longer exists in the store.
	TaskNotFound struct{ ID string }

	// TaskFetchFailed reports a failed fetch of a single task.
	TaskFetchFailed struct {
		ID  string
		Err error
	}

	NoticeDismissed struct{}
)

func (SearchChanged) isAction()       {}
func (StatusFilterChanged) isAction() {}
func (FiltersReset) isAction()        {}
func (SortToggled) isAction()         {}
func (PageRequested) isAction()       {}
func (PageSizeChanged) isAction()     {}
func (LoadStarted) isAction()         {}
func (LoadSucceeded) isAction()       {}
func (LoadFailed) isAction()          {}
func (DeleteSucceeded) isAction()     {}
func (DeleteFailed) isAction()        {}
func (TaskSaved) isAction()           {}
func (MutationFailed) isAction()      {}
func (TaskNotFound) isAction()        {}
func (TaskFetchFailed) isAction()     {}
func (NoticeDismissed) isAction()     {}

// Reduce returns the state that follows s after a.
//
// Fetch outcomes whose generation is older than s.Generation are stale
// and leave s unchanged, so a slow reply can't overwrite a newer one.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SearchChanged:
		s.Search = a.Search
		s.Page = 1
	case StatusFilterChanged:
		s.StatusFilter = a.Status
		s.Page = 1
	case FiltersReset:
		s.Search = ""
		s.StatusFilter = ""
		s.Page = 1
	case SortToggled:
		s.SortAsc = !s.SortAsc
	case PageRequested:
		s.Page = ClampPage(a.Page, len(Filter(s.Snapshot, s.Search, s.StatusFilter)), s.PageSize)
	case PageSizeChanged:
		s.PageSize = a.Size
		if s.PageSize <= 0 {
			s.PageSize = DefaultPageSize
		}
		s.Page = ClampPage(s.Page, len(Filter(s.Snapshot, s.Search, s.StatusFilter)), s.PageSize)
	case LoadStarted:
		if a.Gen < s.Generation {
			return s
		}
		s.Generation = a.Gen
		s.Phase = PhaseLoading
	case LoadSucceeded:
		if a.Gen != s.Generation {
			return s
		}
		s.Snapshot = slices.Clone(a.Tasks)
		s.Phase = PhaseLoaded
		s.LastError = nil
		s.Page = ClampPage(s.Page, len(Filter(s.Snapshot, s.Search, s.StatusFilter)), s.PageSize)
	case LoadFailed:
		if a.Gen != s.Generation {
			return s
		}
		s.Phase = PhaseError
		s.LastError = a.Err
		s.Notice = fmt.Sprintf("Failed to fetch tasks: %v", a.Err)
	case DeleteSucceeded:
		s.Notice = "Task deleted successfully!"
	case DeleteFailed:
		s.Notice = fmt.Sprintf("Failed to delete task: %v", a.Err)
	case TaskSaved:
		if a.Created {
			s.Notice = "Task created successfully!"
		} else {
			s.Notice = "Task updated successfully!"
		}
	case MutationFailed:
		s.Notice = fmt.Sprintf("Failed to save task: %v", a.Err)
	case TaskNotFound:
		s.Notice = "Task not found"
	case TaskFetchFailed:
		s.Notice = fmt.Sprintf("Failed to fetch task: %v", a.Err)
	case NoticeDismissed:
		s.Notice = ""
	}
	return s
}
