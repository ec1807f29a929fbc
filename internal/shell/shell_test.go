package shell_test

import (
	"context"
	"errors"
	"taskBoard/internal/dialog"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository/task/inmemory"
	"taskBoard/internal/shell"
	"taskBoard/internal/table"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShell() (*shell.Shell, *inmemory.TaskStorage) {
	storage := inmemory.NewTaskStorage()
	return shell.New(storage), storage
}

func addTask(t *testing.T, s *shell.Shell, name, priority string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Dispatch(ctx, shell.OpenAdd{}))
	require.NoError(t, s.Dispatch(ctx, shell.SubmitAdd{Fields: shell.Fields{
		task.FieldName:        name,
		task.FieldDescription: name + " description",
		task.FieldDeadline:    "2024-01-01",
		task.FieldPriority:    priority,
	}}))
}

func rowNames(p shell.Page) []string {
	res := []string{}
	for _, r := range p.Rows {
		res = append(res, r.Task.Name)
	}
	return res
}

func TestShell_AddScenario(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()

	require.NoError(t, s.Dispatch(ctx, shell.OpenAdd{}))
	assert.True(t, s.Page(ctx).Add.Open)

	err := s.Dispatch(ctx, shell.SubmitAdd{Fields: shell.Fields{
		task.FieldName:        "Pay bills",
		task.FieldDescription: "Due monthly",
		task.FieldDeadline:    "2024-01-01",
		task.FieldPriority:    "High",
	}})
	require.NoError(t, err)

	list := storage.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Pay bills", list[0].Name)
	assert.Equal(t, task.StatusPending, list[0].Status)
	assert.Equal(t, task.PriorityHigh, list[0].Priority)

	page := s.Page(ctx)
	assert.False(t, page.Add.Open)
	assert.Equal(t, []string{"Pay bills"}, rowNames(page))
}

func TestShell_AddValidation(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()

	require.NoError(t, s.Dispatch(ctx, shell.OpenAdd{}))
	err := s.Dispatch(ctx, shell.SubmitAdd{Fields: shell.Fields{
		task.FieldDescription: "Due monthly",
		task.FieldDeadline:    "2024-01-01",
	}})

	var vErr *dialog.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Empty(t, storage.List(ctx))

	page := s.Page(ctx)
	assert.True(t, page.Add.Open)
	assert.Equal(t, "All fields are required!", page.Add.Error)
	assert.Equal(t, "Due monthly", page.Add.Draft.Description)

	require.NoError(t, s.Dispatch(ctx, shell.CancelAdd{}))
	page = s.Page(ctx)
	assert.False(t, page.Add.Open)
	assert.Empty(t, page.Add.Error)
}

func TestShell_UnknownField(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()
	require.NoError(t, s.Dispatch(ctx, shell.OpenAdd{}))

	err := s.Dispatch(ctx, shell.SubmitAdd{Fields: shell.Fields{"owner": "me"}})

	assert.ErrorIs(t, err, task.ErrUnknownField)
	assert.Empty(t, storage.List(ctx))
	assert.True(t, s.Page(ctx).Add.Open)
}

func TestShell_UnknownPriority(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()
	require.NoError(t, s.Dispatch(ctx, shell.OpenAdd{}))

	err := s.Dispatch(ctx, shell.SubmitAdd{Fields: shell.Fields{
		task.FieldName:        "Pay bills",
		task.FieldDescription: "Due monthly",
		task.FieldDeadline:    "2024-01-01",
		task.FieldPriority:    "Urgent",
	}})

	assert.ErrorIs(t, err, task.ErrInvalidPriority)
	assert.Empty(t, storage.List(ctx))
	assert.True(t, s.Page(ctx).Add.Open)
}

func TestShell_EditFlow(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()
	addTask(t, s, "Buy milk", "Low")
	id := storage.List(ctx)[0].ID

	require.NoError(t, s.Dispatch(ctx, shell.OpenEdit{ID: id}))
	page := s.Page(ctx)
	require.True(t, page.Edit.Open)
	assert.Equal(t, "Buy milk", page.Edit.Task.Name)

	require.NoError(t, s.Dispatch(ctx, shell.SubmitEdit{Fields: shell.Fields{
		task.FieldStatus: "In Progress",
	}}))

	got, err := storage.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, got.Status)
	assert.Equal(t, "Buy milk", got.Name)
	assert.False(t, s.Page(ctx).Edit.Open)
}

func TestShell_EditClose(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()
	addTask(t, s, "Buy milk", "Low")
	before := storage.List(ctx)

	require.NoError(t, s.Dispatch(ctx, shell.OpenEdit{ID: before[0].ID}))
	require.NoError(t, s.Dispatch(ctx, shell.CloseEdit{}))

	assert.False(t, s.Page(ctx).Edit.Open)
	assert.Equal(t, before, storage.List(ctx))
}

func TestShell_DeleteScenario(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()
	addTask(t, s, "Buy milk", "Low")
	id := storage.List(ctx)[0].ID

	require.NoError(t, s.Dispatch(ctx, shell.RequestDelete{ID: id}))
	assert.True(t, s.Page(ctx).Delete.Open)
	require.NoError(t, s.Dispatch(ctx, shell.CancelDelete{}))
	assert.False(t, s.Page(ctx).Delete.Open)
	assert.Len(t, storage.List(ctx), 1)

	require.NoError(t, s.Dispatch(ctx, shell.RequestDelete{ID: id}))
	require.NoError(t, s.Dispatch(ctx, shell.ConfirmDelete{}))
	assert.Empty(t, storage.List(ctx))
	assert.False(t, s.Page(ctx).Delete.Open)
}

// TestShell_StaleIDs checks that rows removed meanwhile do not open dialogs
func TestShell_StaleIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newShell()

	require.NoError(t, s.Dispatch(ctx, shell.OpenEdit{ID: uuid.New()}))
	require.NoError(t, s.Dispatch(ctx, shell.RequestDelete{ID: uuid.New()}))

	page := s.Page(ctx)
	assert.False(t, page.Edit.Open)
	assert.False(t, page.Delete.Open)
}

func TestShell_SearchAndSort(t *testing.T) {
	ctx := context.Background()
	s, _ := newShell()
	addTask(t, s, "Buy milk", "Low")
	addTask(t, s, "Clean house", "High")
	addTask(t, s, "Pay bills", "Medium")

	require.NoError(t, s.Dispatch(ctx, shell.ToggleSort{Column: "priority"}))
	require.NoError(t, s.Dispatch(ctx, shell.ToggleSort{Column: "priority"}))
	page := s.Page(ctx)
	assert.Equal(t, []string{"Clean house", "Pay bills", "Buy milk"}, rowNames(page))
	assert.Equal(t, table.Sorting{Column: "priority", Desc: true}, page.Sorting)

	for _, h := range page.Headers {
		if h.Key == "priority" {
			assert.Equal(t, "desc", h.Direction)
		} else {
			assert.Empty(t, h.Direction)
		}
	}

	require.NoError(t, s.Dispatch(ctx, shell.Search{Query: "MILK"}))
	page = s.Page(ctx)
	assert.Equal(t, "MILK", page.Filter)
	assert.Equal(t, []string{"Buy milk"}, rowNames(page))

	err := s.Dispatch(ctx, shell.ToggleSort{Column: "owner"})
	assert.ErrorIs(t, err, table.ErrUnknownColumn)
}

// TestShell_DeleteDuringEdit keeps the edit snapshot untouched when its task is deleted
func TestShell_DeleteDuringEdit(t *testing.T) {
	ctx := context.Background()
	s, storage := newShell()
	addTask(t, s, "Buy milk", "Low")
	id := storage.List(ctx)[0].ID

	require.NoError(t, s.Dispatch(ctx, shell.OpenEdit{ID: id}))
	require.NoError(t, s.Dispatch(ctx, shell.RequestDelete{ID: id}))
	require.NoError(t, s.Dispatch(ctx, shell.ConfirmDelete{}))
	assert.True(t, s.Page(ctx).Edit.Open)

	require.NoError(t, s.Dispatch(ctx, shell.SubmitEdit{}))
	assert.Empty(t, storage.List(ctx))
}

func TestShell_PageChoices(t *testing.T) {
	s, _ := newShell()
	page := s.Page(context.Background())

	assert.Equal(t, []task.Status{task.StatusPending, task.StatusInProgress, task.StatusCompleted}, page.Statuses)
	assert.Equal(t, []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh}, page.Priorities)
	assert.Len(t, page.Headers, 5)
	assert.Empty(t, page.Rows)
}
