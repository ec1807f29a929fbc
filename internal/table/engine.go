package table

import (
	"context"
	"iter"
	"strings"
	"taskBoard/internal/models/task"

	"golang.org/x/text/cases"
)

// Source is anything that can hand out the current task snapshot.
type Source interface {
	List(ctx context.Context) []task.Task
}

type Cell struct {
	Column string
	Text   string
	Tag    string
}

type Row struct {
	Task  task.Task
	Cells []Cell
}

// Engine derives the displayed rows from a Source, a global text filter and
// one sort column. It is not safe for concurrent use; callers serialize access.
type Engine struct {
	source  Source
	columns []Column
	filter  string
	sorting Sorting
}

// NewEngine uses DefaultColumns when no columns are given.
func NewEngine(source Source, columns ...Column) *Engine {
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	return &Engine{
		source:  source,
		columns: columns,
	}
}

func (e *Engine) Columns() []Column {
	return e.columns
}

func (e *Engine) SetFilter(filter string) {
	e.filter = filter
}

func (e *Engine) Filter() string {
	return e.filter
}

func (e *Engine) Sorting() Sorting {
	return e.sorting
}

// SetSorting replaces the sort state. An empty column clears sorting.
func (e *Engine) SetSorting(s Sorting) error {
	if s.Active() {
		if _, err := findColumn(e.columns, s.Column); err != nil {
			return err
		}
	}
	e.sorting = s
	return nil
}

func (e *Engine) ToggleSort(column string) error {
	if _, err := findColumn(e.columns, column); err != nil {
		return err
	}
	e.sorting = e.sorting.Toggle(column)
	return nil
}

// Rows returns a lazy sequence of rows. Filter, sorting and the source are read
// when iteration starts, so ranging again always reflects the latest state.
func (e *Engine) Rows(ctx context.Context) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		tasks, err := Apply(e.source.List(ctx), e.columns, e.filter, e.sorting)
		if err != nil {
			// sorting is validated on every setter, so this only drops the sort
			tasks, _ = Apply(e.source.List(ctx), e.columns, e.filter, Sorting{})
		}
		for _, t := range tasks {
			if !yield(e.row(t)) {
				return
			}
		}
	}
}

func (e *Engine) row(t task.Task) Row {
	cells := make([]Cell, 0, len(e.columns))
	for _, c := range e.columns {
		cell := Cell{Column: c.Key, Text: c.Format(t)}
		if c.Tag != nil {
			cell.Tag = c.Tag(t)
		}
		cells = append(cells, cell)
	}
	return Row{Task: t, Cells: cells}
}

// Apply filters then sorts tasks without touching the input slice.
func Apply(tasks []task.Task, columns []Column, filter string, sorting Sorting) ([]task.Task, error) {
	kept := Filter(tasks, columns, filter)
	if !sorting.Active() {
		return kept, nil
	}

	col, err := findColumn(columns, sorting.Column)
	if err != nil {
		return nil, err
	}
	sortTasks(kept, col, sorting.Desc)
	return kept, nil
}

// Filter keeps tasks where any column's text contains filter, ignoring case.
// An empty filter keeps everything.
func Filter(tasks []task.Task, columns []Column, filter string) []task.Task {
	kept := make([]task.Task, 0, len(tasks))
	if filter == "" {
		return append(kept, tasks...)
	}

	fold := cases.Fold()
	needle := fold.String(filter)
	for _, t := range tasks {
		if matches(t, columns, needle, fold) {
			kept = append(kept, t)
		}
	}
	return kept
}

func matches(t task.Task, columns []Column, needle string, fold cases.Caser) bool {
	for _, c := range columns {
		if strings.Contains(fold.String(c.Format(t)), needle) {
			return true
		}
	}
	return false
}
