package handlers

import (
	"context"
	"taskBoard/internal/models/task"
	"taskBoard/internal/shell"

	"github.com/google/uuid"
)

type TaskStore interface {
	Add(context.Context, task.Draft) task.Task
	Update(context.Context, uuid.UUID, task.Task) error
	Remove(context.Context, uuid.UUID)
	GetByID(context.Context, uuid.UUID) (task.Task, error)
	List(context.Context) []task.Task
	HealthCheck(context.Context) error
	Len() int
}

type UIShell interface {
	Dispatch(context.Context, shell.Command) error
	Page(context.Context) shell.Page
}
