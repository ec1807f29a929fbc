package dto

import (
	"taskBoard/internal/models/task"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	// nil keeps the Medium default, an explicit "" is kept and fails validation
	Priority *task.Priority `json:"priority,omitempty"`
}

// Draft applies the add-form defaults before the request fields.
func (r CreateTaskRequest) Draft() (task.Draft, error) {
	d := task.NewDraft()
	d.Apply(
		task.WithName(r.Name),
		task.WithDescription(r.Description),
		task.WithDeadline(r.Deadline),
	)
	if r.Priority != nil {
		priority, err := task.ParsePriority(string(*r.Priority))
		if err != nil {
			return task.Draft{}, err
		}
		d.Apply(task.WithPriority(priority))
	}
	return d, nil
}

type UpdateTaskRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Deadline    *string        `json:"deadline,omitempty"`
	Status      *task.Status   `json:"status,omitempty"`
	Priority    *task.Priority `json:"priority,omitempty"`
}

func (r UpdateTaskRequest) Options() ([]task.DraftOption, error) {
	var opts []task.DraftOption
	if r.Name != nil {
		opts = append(opts, task.WithName(*r.Name))
	}
	if r.Description != nil {
		opts = append(opts, task.WithDescription(*r.Description))
	}
	if r.Deadline != nil {
		opts = append(opts, task.WithDeadline(*r.Deadline))
	}
	if r.Status != nil {
		status, err := task.ParseStatus(string(*r.Status))
		if err != nil {
			return nil, err
		}
		opts = append(opts, task.WithStatus(status))
	}
	if r.Priority != nil {
		priority, err := task.ParsePriority(string(*r.Priority))
		if err != nil {
			return nil, err
		}
		opts = append(opts, task.WithPriority(priority))
	}
	return opts, nil
}

type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    string    `json:"deadline"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
}

func FromTask(t task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
	}
}

func FromTaskList(tasks []task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
