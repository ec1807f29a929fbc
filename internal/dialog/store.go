package dialog

import (
	"context"
	"taskBoard/internal/models/task"

	"github.com/google/uuid"
)

// Store is the write side of the task store used by the dialogs.
type Store interface {
	Add(ctx context.Context, draft task.Draft) task.Task
	Update(ctx context.Context, id uuid.UUID, patch task.Task) error
	Remove(ctx context.Context, id uuid.UUID)
}
