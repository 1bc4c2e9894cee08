package models

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// OrDefault returns StatusPending for an empty status.
func (s Status) OrDefault() Status {
	if s == "" {
		return StatusPending
	}
	return s
}

// DueDateLayout is the wire format of Task.DueDate.
const DueDateLayout = time.DateOnly

var ErrInvalidDueDate = errors.New("invalid due date")

// ParseDueDate parses a YYYY-MM-DD date, falling back to RFC 3339.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DueDateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDueDate
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	DueDate     string    `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DueTime returns the parsed due date, or the zero time if it doesn't parse.
func (t *Task) DueTime() time.Time {
	due, err := ParseDueDate(t.DueDate)
	if err != nil {
		return time.Time{}
	}
	return due
}
