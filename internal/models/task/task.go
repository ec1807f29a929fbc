package task

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid task status")
var ErrInvalidPriority = errors.New("invalid task priority")

type Task struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    string    `json:"deadline"` // ISO date, YYYY-MM-DD
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
}

// Draft is a task that has not been committed to the store yet and therefore has no id.
type Draft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

type Status string
type Priority string

const StatusPending Status = "Pending"
const StatusInProgress Status = "In Progress"
const StatusCompleted Status = "Completed"

const PriorityLow Priority = "Low"
const PriorityMedium Priority = "Medium"
const PriorityHigh Priority = "High"

func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParseStatus accepts one of Statuses or the empty string.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if s != "" && !slices.Contains(Statuses(), s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return s, nil
}

// ParsePriority accepts one of Priorities or the empty string.
func ParsePriority(value string) (Priority, error) {
	p := Priority(value)
	if p != "" && !slices.Contains(Priorities(), p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, value)
	}
	return p, nil
}

// Rank orders priorities High > Medium > Low. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func NewDraft() Draft {
	return Draft{
		Status:   StatusPending,
		Priority: PriorityMedium,
	}
}

func (d Draft) WithID(id uuid.UUID) Task {
	return Task{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Deadline:    d.Deadline,
		Status:      d.Status,
		Priority:    d.Priority,
	}
}

func (t Task) Draft() Draft {
	return Draft{
		Name:        t.Name,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      t.Status,
		Priority:    t.Priority,
	}
}
