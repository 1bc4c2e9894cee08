package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/taskform"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldStatus
	fieldDueDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldStatus:      "Status",
	fieldDueDate:     "Due date",
}

// fieldNames maps form fields to taskform.Values field names.
var fieldNames = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldStatus:      "Status",
	fieldDueDate:     "DueDate",
}

type formModel struct {
	values     taskform.Values
	focus      formField
	submitting bool

	invalid *taskform.ValidationError
	err     error
}

func newFormModel(values taskform.Values) *formModel {
	return &formModel{values: values}
}

func (f *formModel) setError(err error) {
	f.invalid = nil
	f.err = nil
	if err == nil {
		return
	}
	var verr *taskform.ValidationError
	if errors.As(err, &verr) {
		f.invalid = verr
		return
	}
	f.err = err
}

// fieldError returns the validation message for field, if any.
func (f *formModel) fieldError(field formField) string {
	if f.invalid == nil {
		return ""
	}
	return f.invalid.Message(fieldNames[field])
}

func (f *formModel) text(field formField) *string {
	switch field {
	case fieldTitle:
		return &f.values.Title
	case fieldDescription:
		return &f.values.Description
	case fieldDueDate:
		return &f.values.DueDate
	default:
		return nil
	}
}

func (f *formModel) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
		return
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return
	}

	if f.focus == fieldStatus {
		switch msg.String() {
		case "right", " ", "l":
			f.values.Status = cycleStatus(f.values.Status, 1)
		case "left", "h":
			f.values.Status = cycleStatus(f.values.Status, -1)
		}
		return
	}

	s := f.text(f.focus)
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(*s); len(r) > 0 {
			*s = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		*s += string(msg.Runes)
	}
}

func cycleStatus(s models.Status, step int) models.Status {
	n := len(models.Statuses)
	for i, st := range models.Statuses {
		if st == s {
			return models.Statuses[(i+step+n)%n]
		}
	}
	return models.StatusPending
}
