package table_test

import (
	"context"
	"slices"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository/task/inmemory"
	"taskBoard/internal/table"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []task.Task

func (s staticSource) List(ctx context.Context) []task.Task {
	return slices.Clone(s)
}

func names(rows []table.Row) []string {
	res := make([]string, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.Task.Name)
	}
	return res
}

func priorities(rows []table.Row) []task.Priority {
	res := make([]task.Priority, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.Task.Priority)
	}
	return res
}

func collect(e *table.Engine) []table.Row {
	return slices.Collect(e.Rows(context.Background()))
}

func sampleTasks() staticSource {
	return staticSource{
		{Name: "Buy milk", Description: "2 liters", Deadline: "2024-03-01", Status: task.StatusPending, Priority: task.PriorityLow},
		{Name: "Clean house", Description: "Kitchen first", Deadline: "2024-01-15", Status: task.StatusInProgress, Priority: task.PriorityHigh},
		{Name: "Pay bills", Description: "Due monthly", Deadline: "2024-02-10", Status: task.StatusCompleted, Priority: task.PriorityMedium},
	}
}

func TestEngine_NoFilterNoSort(t *testing.T) {
	e := table.NewEngine(sampleTasks())

	assert.Equal(t, []string{"Buy milk", "Clean house", "Pay bills"}, names(collect(e)))
}

func TestEngine_Filter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "name match", filter: "milk", want: []string{"Buy milk"}},
		{name: "case insensitive", filter: "MILK", want: []string{"Buy milk"}},
		{name: "description match", filter: "kitchen", want: []string{"Clean house"}},
		{name: "deadline match", filter: "2024-02", want: []string{"Pay bills"}},
		{name: "status match", filter: "in progress", want: []string{"Clean house"}},
		{name: "priority match", filter: "medium", want: []string{"Pay bills"}},
		{name: "any column", filter: "2024", want: []string{"Buy milk", "Clean house", "Pay bills"}},
		{name: "no match", filter: "garage", want: []string{}},
		{name: "empty keeps all", filter: "", want: []string{"Buy milk", "Clean house", "Pay bills"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := table.NewEngine(sampleTasks())
			e.SetFilter(tt.filter)

			assert.Equal(t, tt.want, names(collect(e)))
		})
	}
}

func TestEngine_SortPriority(t *testing.T) {
	source := staticSource{
		{Name: "a", Priority: task.PriorityLow},
		{Name: "b", Priority: task.PriorityHigh},
		{Name: "c", Priority: task.PriorityMedium},
	}
	e := table.NewEngine(source)

	require.NoError(t, e.ToggleSort("priority"))
	assert.Equal(t, []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh}, priorities(collect(e)))

	require.NoError(t, e.ToggleSort("priority"))
	assert.Equal(t, []task.Priority{task.PriorityHigh, task.PriorityMedium, task.PriorityLow}, priorities(collect(e)))
}

func TestEngine_SortText(t *testing.T) {
	tests := []struct {
		column string
		want   []string
	}{
		{column: "name", want: []string{"Buy milk", "Clean house", "Pay bills"}},
		{column: "description", want: []string{"Buy milk", "Pay bills", "Clean house"}},
		{column: "deadline", want: []string{"Clean house", "Pay bills", "Buy milk"}},
		{column: "status", want: []string{"Pay bills", "Clean house", "Buy milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			e := table.NewEngine(sampleTasks())
			require.NoError(t, e.ToggleSort(tt.column))

			assert.Equal(t, tt.want, names(collect(e)))
		})
	}
}

func TestEngine_SortTextIgnoresCase(t *testing.T) {
	source := staticSource{
		{Name: "banana"},
		{Name: "Cherry"},
		{Name: "apple"},
		{Name: "Apple"},
	}
	e := table.NewEngine(source)

	require.NoError(t, e.ToggleSort("name"))
	assert.Equal(t, []string{"apple", "Apple", "banana", "Cherry"}, names(collect(e)))

	require.NoError(t, e.ToggleSort("name"))
	assert.Equal(t, []string{"Cherry", "banana", "apple", "Apple"}, names(collect(e)))
}

// TestEngine_SortStable checks that equal keys keep their original order in both directions
func TestEngine_SortStable(t *testing.T) {
	source := staticSource{
		{Name: "first", Priority: task.PriorityHigh},
		{Name: "low", Priority: task.PriorityLow},
		{Name: "second", Priority: task.PriorityHigh},
		{Name: "third", Priority: task.PriorityHigh},
	}
	e := table.NewEngine(source)

	require.NoError(t, e.ToggleSort("priority"))
	assert.Equal(t, []string{"low", "first", "second", "third"}, names(collect(e)))

	require.NoError(t, e.ToggleSort("priority"))
	assert.Equal(t, []string{"first", "second", "third", "low"}, names(collect(e)))
}

func TestEngine_FilterThenSort(t *testing.T) {
	e := table.NewEngine(sampleTasks())
	e.SetFilter("2024-0")
	require.NoError(t, e.ToggleSort("deadline"))
	require.NoError(t, e.ToggleSort("deadline"))

	assert.Equal(t, []string{"Buy milk", "Pay bills", "Clean house"}, names(collect(e)))
}

func TestEngine_ToggleSortCycle(t *testing.T) {
	e := table.NewEngine(sampleTasks())
	assert.False(t, e.Sorting().Active())

	require.NoError(t, e.ToggleSort("name"))
	assert.Equal(t, table.Sorting{Column: "name"}, e.Sorting())

	require.NoError(t, e.ToggleSort("name"))
	assert.Equal(t, table.Sorting{Column: "name", Desc: true}, e.Sorting())

	require.NoError(t, e.ToggleSort("name"))
	assert.Equal(t, table.Sorting{Column: "name"}, e.Sorting())

	// another column replaces the active one and starts ascending
	require.NoError(t, e.ToggleSort("name"))
	require.NoError(t, e.ToggleSort("status"))
	assert.Equal(t, table.Sorting{Column: "status"}, e.Sorting())
}

func TestEngine_UnknownColumn(t *testing.T) {
	e := table.NewEngine(sampleTasks())

	err := e.ToggleSort("owner")
	assert.ErrorIs(t, err, table.ErrUnknownColumn)
	assert.False(t, e.Sorting().Active())

	err = e.SetSorting(table.Sorting{Column: "owner"})
	assert.ErrorIs(t, err, table.ErrUnknownColumn)

	assert.NoError(t, e.SetSorting(table.Sorting{}))
}

// TestEngine_RowsRestartable checks that a sequence reflects store changes when ranged again
func TestEngine_RowsRestartable(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	e := table.NewEngine(storage)
	rows := e.Rows(ctx)

	assert.Empty(t, slices.Collect(rows))

	storage.Add(ctx, task.Draft{Name: "Buy milk", Priority: task.PriorityLow})
	storage.Add(ctx, task.Draft{Name: "Clean house", Priority: task.PriorityHigh})
	assert.Equal(t, []string{"Buy milk", "Clean house"}, names(slices.Collect(rows)))

	e.SetFilter("house")
	assert.Equal(t, []string{"Clean house"}, names(slices.Collect(rows)))
}

func TestEngine_RowsEarlyStop(t *testing.T) {
	e := table.NewEngine(sampleTasks())

	var seen []string
	for row := range e.Rows(context.Background()) {
		seen = append(seen, row.Task.Name)
		break
	}
	assert.Equal(t, []string{"Buy milk"}, seen)
}

func TestEngine_Cells(t *testing.T) {
	e := table.NewEngine(sampleTasks())
	e.SetFilter("milk")

	rows := collect(e)
	require.Len(t, rows, 1)

	cells := rows[0].Cells
	require.Len(t, cells, 5)
	assert.Equal(t, table.Cell{Column: "name", Text: "Buy milk"}, cells[0])
	assert.Equal(t, table.Cell{Column: "priority", Text: "Low", Tag: "priority-low"}, cells[4])
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := slices.Clone(tasks)

	_, err := table.Apply(tasks, table.DefaultColumns(), "", table.Sorting{Column: "priority", Desc: true})
	require.NoError(t, err)

	assert.Equal(t, []task.Task(before), []task.Task(tasks))
}

func TestSorting_Direction(t *testing.T) {
	s := table.Sorting{Column: "name", Desc: true}

	assert.Equal(t, "desc", s.Direction("name"))
	assert.Equal(t, "", s.Direction("status"))
	assert.Equal(t, "asc", table.Sorting{Column: "name"}.Direction("name"))
}
