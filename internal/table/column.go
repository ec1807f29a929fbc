package table

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"taskBoard/internal/models/task"

	"golang.org/x/text/cases"
)

var ErrUnknownColumn = errors.New("unknown column")

// Column describes how one task attribute is shown, searched and sorted.
type Column struct {
	Key     string
	Label   string
	Compare func(a, b task.Task) int
	Format  func(t task.Task) string
	// Tag is optional and names the visual tag of a cell, e.g. "priority-high".
	Tag func(t task.Task) string
}

func textColumn(key, label string, value func(task.Task) string) Column {
	return Column{
		Key:   key,
		Label: label,
		// case-insensitive, so "apple" < "banana" < "Cherry"
		Compare: func(a, b task.Task) int {
			fold := cases.Fold()
			return strings.Compare(fold.String(value(a)), fold.String(value(b)))
		},
		Format: value,
	}
}

// DefaultColumns returns the task table columns in display order.
func DefaultColumns() []Column {
	return []Column{
		textColumn("name", "Task Name", func(t task.Task) string { return t.Name }),
		textColumn("description", "Description", func(t task.Task) string { return t.Description }),
		// ISO dates order correctly as plain strings
		textColumn("deadline", "Deadline", func(t task.Task) string { return t.Deadline }),
		textColumn("status", "Status", func(t task.Task) string { return string(t.Status) }),
		{
			Key:   "priority",
			Label: "Priority",
			Compare: func(a, b task.Task) int {
				return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
			},
			Format: func(t task.Task) string { return string(t.Priority) },
			Tag: func(t task.Task) string {
				return "priority-" + strings.ToLower(string(t.Priority))
			},
		},
	}
}

func findColumn(columns []Column, key string) (Column, error) {
	for _, c := range columns {
		if c.Key == key {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
}
