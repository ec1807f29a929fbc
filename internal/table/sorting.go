package table

import (
	"slices"
	"taskBoard/internal/models/task"
)

// Sorting is the single active sort column. The zero value means unsorted.
type Sorting struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

func (s Sorting) Active() bool {
	return s.Column != ""
}

// Toggle returns the state after the header of column is clicked:
// another column (or none) starts ascending, the same column flips direction.
func (s Sorting) Toggle(column string) Sorting {
	if s.Column != column {
		return Sorting{Column: column}
	}
	return Sorting{Column: column, Desc: !s.Desc}
}

// Direction reports "asc", "desc" or "" for the given column.
func (s Sorting) Direction(column string) string {
	switch {
	case s.Column != column:
		return ""
	case s.Desc:
		return "desc"
	default:
		return "asc"
	}
}

// sortTasks sorts in place. Equal keys keep their order in both directions.
func sortTasks(tasks []task.Task, col Column, desc bool) {
	slices.SortStableFunc(tasks, func(a, b task.Task) int {
		c := col.Compare(a, b)
		if desc {
			return -c
		}
		return c
	})
}
