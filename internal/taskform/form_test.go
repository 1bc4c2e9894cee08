package taskform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/client"
	"github.com/adanyl0v/taskboard/internal/models"
)

type fakeAPI struct {
	created   []client.TaskInput
	updated   map[string]client.TaskInput
	createErr error
	updateErr error
}

func (f *fakeAPI) Create(_ context.Context, in client.TaskInput) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &models.Task{
		ID:          "new-id",
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
	}, nil
}

func (f *fakeAPI) Update(_ context.Context, id string, in client.TaskInput) (*models.Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updated == nil {
		f.updated = map[string]client.TaskInput{}
	}
	f.updated[id] = in
	return &models.Task{ID: id, Title: in.Title, Status: in.Status, DueDate: in.DueDate}, nil
}

func validValues() Values {
	return Values{
		Title:       "Write report",
		Description: "quarterly",
		Status:      models.StatusInProgress,
		DueDate:     "2024-01-01",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(v *Values)
		want   map[string]string
	}{
		{
			name:   "valid",
			modify: func(v *Values) {},
		},
		{
			name:   "empty status is allowed",
			modify: func(v *Values) { v.Status = "" },
		},
		{
			name:   "empty description is allowed",
			modify: func(v *Values) { v.Description = "" },
		},
		{
			name:   "missing title",
			modify: func(v *Values) { v.Title = "" },
			want:   map[string]string{"Title": "Title is required"},
		},
		{
			name:   "blank title",
			modify: func(v *Values) { v.Title = "   " },
			want:   map[string]string{"Title": "Title is required"},
		},
		{
			name:   "missing due date",
			modify: func(v *Values) { v.DueDate = "" },
			want:   map[string]string{"DueDate": "Due date is required"},
		},
		{
			name:   "malformed due date",
			modify: func(v *Values) { v.DueDate = "tomorrow" },
			want:   map[string]string{"DueDate": "Due date must be a date like 2024-01-31"},
		},
		{
			name:   "unknown status",
			modify: func(v *Values) { v.Status = "Blocked" },
			want:   map[string]string{"Status": "Status must be Pending, In Progress or Completed"},
		},
		{
			name: "several fields",
			modify: func(v *Values) {
				v.Title = ""
				v.DueDate = ""
			},
			want: map[string]string{
				"Title":   "Title is required",
				"DueDate": "Due date is required",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validValues()
			tc.modify(&v)

			err := v.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tc.want))
			for field, msg := range tc.want {
				assert.Equal(t, msg, verr.Message(field))
				assert.Contains(t, verr.Error(), msg)
			}
		})
	}
}

func TestFromTask(t *testing.T) {
	task := models.Task{
		ID:          "42",
		Title:       "Title",
		Description: "Desc",
		DueDate:     "2024-02-02",
	}

	v := FromTask(task)
	assert.Equal(t, "42", v.ID)
	assert.True(t, v.IsEdit())
	assert.Equal(t, models.StatusPending, v.Status)
	assert.Equal(t, "Desc", v.Description)

	task.Status = models.StatusCompleted
	assert.Equal(t, models.StatusCompleted, FromTask(task).Status)

	assert.False(t, New().IsEdit())
	assert.Equal(t, models.StatusPending, New().Status)
}

func TestSubmitCreate(t *testing.T) {
	api := &fakeAPI{}
	v := validValues()
	v.Title = "  Write report  "

	mutations := 0
	task, err := v.Submit(context.Background(), api, func(context.Context) error {
		mutations++
		return nil
	})
	require.NoError(t, err)

	require.Len(t, api.created, 1)
	assert.Equal(t, client.TaskInput{
		Title:       "Write report",
		Description: "quarterly",
		Status:      models.StatusInProgress,
		DueDate:     "2024-01-01",
	}, api.created[0])
	assert.Equal(t, "new-id", task.ID)
	assert.Equal(t, 1, mutations)
	assert.Equal(t, New(), v, "values reset after create")
}

func TestSubmitCreateDefaultsStatus(t *testing.T) {
	api := &fakeAPI{}
	v := validValues()
	v.Status = ""

	_, err := v.Submit(context.Background(), api, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, api.created[0].Status)
}

func TestSubmitUpdate(t *testing.T) {
	api := &fakeAPI{}
	v := FromTask(models.Task{
		ID:          "7",
		Title:       "Old",
		Description: "",
		Status:      models.StatusPending,
		DueDate:     "2024-03-03",
	})
	v.Status = models.StatusCompleted

	mutations := 0
	_, err := v.Submit(context.Background(), api, func(context.Context) error {
		mutations++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, client.TaskInput{
		Title:       "Old",
		Description: "",
		Status:      models.StatusCompleted,
		DueDate:     "2024-03-03",
	}, api.updated["7"], "update sends every field")
	assert.Equal(t, 1, mutations)
	assert.Equal(t, "7", v.ID, "values kept after update")
}

func TestSubmitInvalidNeverCallsAPI(t *testing.T) {
	api := &fakeAPI{}
	v := validValues()
	v.Title = ""

	called := false
	_, err := v.Submit(context.Background(), api, func(context.Context) error {
		called = true
		return nil
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, api.created)
	assert.False(t, called)
	assert.Empty(t, v.Title, "values kept on failure")
}

func TestSubmitAPIErrors(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		apiErr := &client.APIError{StatusCode: 500, Message: "Failed to create task"}
		v := validValues()

		called := false
		_, err := v.Submit(context.Background(), &fakeAPI{createErr: apiErr}, func(context.Context) error {
			called = true
			return nil
		})

		var target *client.APIError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 500, target.StatusCode)
		assert.False(t, called)
		assert.Equal(t, "Write report", v.Title, "values kept on failure")
	})

	t.Run("update not found", func(t *testing.T) {
		v := validValues()
		v.ID = "missing"

		_, err := v.Submit(context.Background(), &fakeAPI{updateErr: client.ErrNotFound}, nil)
		assert.ErrorIs(t, err, client.ErrNotFound)
	})
}

func TestSubmitReloadFailure(t *testing.T) {
	reloadErr := errors.New("reload failed")
	v := validValues()

	task, err := v.Submit(context.Background(), &fakeAPI{}, func(context.Context) error {
		return reloadErr
	})

	assert.ErrorIs(t, err, reloadErr)
	require.NotNil(t, task)
	assert.Equal(t, "new-id", task.ID)
}
