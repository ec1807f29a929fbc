package dialog

import (
	"context"
	"errors"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"

	"go.uber.org/zap"
)

// EditDialog works on a copy of one task and writes it back on Submit.
// Fields are not validated before the write.
type EditDialog struct {
	store   Store
	editing *task.Task
}

func NewEditDialog(store Store) *EditDialog {
	return &EditDialog{store: store}
}

func (d *EditDialog) IsOpen() bool {
	return d.editing != nil
}

// Snapshot returns the working copy and whether the dialog is open.
func (d *EditDialog) Snapshot() (task.Task, bool) {
	if d.editing == nil {
		return task.Task{}, false
	}
	return *d.editing, true
}

func (d *EditDialog) Open(t task.Task) {
	snapshot := t
	d.editing = &snapshot
}

func (d *EditDialog) UpdateField(opts ...task.DraftOption) {
	if d.editing == nil {
		return
	}
	draft := d.editing.Draft()
	draft.Apply(opts...)
	*d.editing = draft.WithID(d.editing.ID)
}

// Submit writes the snapshot back. A task removed in the meantime is ignored.
func (d *EditDialog) Submit(ctx context.Context) {
	if d.editing == nil {
		return
	}
	snapshot := *d.editing
	d.editing = nil

	err := d.store.Update(ctx, snapshot.ID, snapshot)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.Warn("Dialog: edited task no longer exists", zap.String("task_id", snapshot.ID.String()))
	case err != nil:
		logger.Error("Dialog: edit not saved", err, zap.String("task_id", snapshot.ID.String()))
	default:
		logger.Info("Dialog: task updated", zap.String("task_id", snapshot.ID.String()))
	}
}

// Close discards the snapshot without touching the store.
func (d *EditDialog) Close() {
	d.editing = nil
}
