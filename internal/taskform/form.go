// Package taskform validates the fields of a task being created or edited
// and submits them to the Task API.
package taskform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adanyl0v/taskboard/internal/client"
	"github.com/adanyl0v/taskboard/internal/models"
)

// API is the part of the Task API the form writes through.
type API interface {
	Create(ctx context.Context, in client.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id string, in client.TaskInput) (*models.Task, error)
}

// MutationFunc is called after a successful save, usually to reload the
// task list.
type MutationFunc func(ctx context.Context) error

// Values are the editable fields of a task. An empty ID means the form
// creates a new task.
type Values struct {
	ID          string
	Title       string        `validate:"required"`
	Description string        `validate:"-"`
	Status      models.Status `validate:"taskstatus"`
	DueDate     string        `validate:"required,duedate"`
}

// New returns empty values for a new task.
func New() Values {
	return Values{Status: models.StatusPending}
}

// FromTask pre-fills the values for editing t.
func FromTask(t models.Task) Values {
	return Values{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.OrDefault(),
		DueDate:     t.DueDate,
	}
}

func (v Values) IsEdit() bool {
	return v.ID != ""
}

// FieldError is a failed rule on one field.
type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Message returns the message for field, or "" if it passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		s := models.Status(fl.Field().String())
		return s == "" || s.Valid()
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDueDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

var messages = map[string]string{
	"Title.required":    "Title is required",
	"DueDate.required":  "Due date is required",
	"DueDate.duedate":   "Due date must be a date like 2024-01-31",
	"Status.taskstatus": "Status must be Pending, In Progress or Completed",
}

func (v Values) trimmed() Values {
	v.Title = strings.TrimSpace(v.Title)
	v.DueDate = strings.TrimSpace(v.DueDate)
	return v
}

// Validate checks every field and returns a *ValidationError listing
// each one that failed.
func (v Values) Validate() error {
	err := validate.Struct(v.trimmed())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// Input returns the request body for the values. Status defaults to
// Pending.
func (v Values) Input() client.TaskInput {
	v = v.trimmed()
	return client.TaskInput{
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status.OrDefault(),
		DueDate:     v.DueDate,
	}
}

// Submit validates the values and creates or updates the task. Update
// replaces every field, so the values must hold the full task. After a
// successful save onMutation is called; after a create the values are
// reset for the next task.
//
// Invalid values return a *ValidationError and never reach api. If the
// save succeeds but onMutation fails, the saved task is returned along
// with the onMutation error.
func (v *Values) Submit(ctx context.Context, api API, onMutation MutationFunc) (*models.Task, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	var (
		task *models.Task
		err  error
	)
	if v.IsEdit() {
		task, err = api.Update(ctx, v.ID, v.Input())
		if err != nil {
			return nil, fmt.Errorf("update task %s: %w", v.ID, err)
		}
	} else {
		task, err = api.Create(ctx, v.Input())
		if err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
		*v = New()
	}

	if onMutation != nil {
		if err := onMutation(ctx); err != nil {
			return task, err
		}
	}
	return task, nil
}
