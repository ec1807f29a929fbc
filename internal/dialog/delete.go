package dialog

import (
	"context"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"

	"go.uber.org/zap"
)

// DeleteDialog asks for confirmation before a task is removed.
type DeleteDialog struct {
	store  Store
	target *task.Task
}

func NewDeleteDialog(store Store) *DeleteDialog {
	return &DeleteDialog{store: store}
}

func (d *DeleteDialog) IsPending() bool {
	return d.target != nil
}

func (d *DeleteDialog) Target() (task.Task, bool) {
	if d.target == nil {
		return task.Task{}, false
	}
	return *d.target, true
}

func (d *DeleteDialog) RequestDelete(t task.Task) {
	target := t
	d.target = &target
}

func (d *DeleteDialog) Confirm(ctx context.Context) {
	if d.target == nil {
		return
	}
	id := d.target.ID
	d.target = nil

	d.store.Remove(ctx, id)
	logger.Info("Dialog: task deleted", zap.String("task_id", id.String()))
}

func (d *DeleteDialog) Cancel() {
	d.target = nil
}
