// Package tasklist holds a client-side snapshot of every task and derives
// the searched, filtered, sorted and paginated view shown to the user.
//
// State is a value. Every user action and every fetch outcome is an
// Action, and Reduce turns the current State and an Action into the next
// State without touching the old one. Engine owns the current State and
// performs the I/O that produces fetch actions.
package tasklist

import "github.com/adanyl0v/taskboard/internal/models"

const (
	// DefaultPageSize is the page size of the task list.
	DefaultPageSize = 6
	// DrawerPageSize is the page size of the compact list.
	DrawerPageSize = 8
)

// Phase is the load state of the snapshot.
type Phase int

const (
	PhaseNotLoaded Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseNotLoaded:
		return "not-loaded"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

type State struct {
	// Snapshot is every task, in the store's order. It is never
	// mutated in place; reducers replace it.
	Snapshot []models.Task

	Search       string
	StatusFilter models.Status // empty matches every status
	SortAsc      bool
	Page         int
	PageSize     int

	Phase Phase
	// LastError is the outcome of the latest failed fetch.
	LastError error
	// Notice is a transient message for the user, cleared by
	// NoticeDismissed.
	Notice string
	// Generation is the number of the latest fetch started.
	Generation uint64
}

// NewState returns the initial state: nothing loaded, ascending due
// dates, page 1.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		SortAsc:  true,
		Page:     1,
		PageSize: pageSize,
		Phase:    PhaseNotLoaded,
	}
}
