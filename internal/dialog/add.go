package dialog

import (
	"context"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"

	"go.uber.org/zap"
)

// AddDialog walks Closed -> Open -> Closed, committing a new task on a valid submit.
type AddDialog struct {
	store  Store
	open   bool
	draft  task.Draft
	errMsg string
}

func NewAddDialog(store Store) *AddDialog {
	return &AddDialog{
		store: store,
		draft: task.NewDraft(),
	}
}

func (d *AddDialog) IsOpen() bool {
	return d.open
}

func (d *AddDialog) Draft() task.Draft {
	return d.draft
}

// ErrorMessage is the inline message of the last failed submit.
func (d *AddDialog) ErrorMessage() string {
	return d.errMsg
}

func (d *AddDialog) Open() {
	d.open = true
	d.draft = task.NewDraft()
	d.errMsg = ""
}

// UpdateField changes the draft while the dialog is open.
func (d *AddDialog) UpdateField(opts ...task.DraftOption) {
	if !d.open {
		return
	}
	d.draft.Apply(opts...)
}

// Submit commits the draft. An incomplete draft yields a *ValidationError
// and the dialog stays open with the entered data. Submitting a closed
// dialog does nothing.
func (d *AddDialog) Submit(ctx context.Context) (task.Task, error) {
	if !d.open {
		return task.Task{}, nil
	}

	if err := ValidateDraft(d.draft); err != nil {
		d.errMsg = err.Message
		logger.Warn("Dialog: add rejected",
			zap.String("error_code", err.Code),
			zap.Any("missing", err.Details["missing"]))
		return task.Task{}, err
	}

	created := d.store.Add(ctx, d.draft)
	logger.Info("Dialog: task added", zap.String("task_id", created.ID.String()))

	d.draft = task.NewDraft()
	d.errMsg = ""
	d.open = false
	return created, nil
}

func (d *AddDialog) Cancel() {
	d.open = false
	d.draft = task.NewDraft()
	d.errMsg = ""
}

// ValidateDraft requires name, description, deadline and priority. Status is
// not checked: it always carries the Pending default.
func ValidateDraft(draft task.Draft) *ValidationError {
	var missing []string
	if draft.Name == "" {
		missing = append(missing, string(task.FieldName))
	}
	if draft.Description == "" {
		missing = append(missing, string(task.FieldDescription))
	}
	if draft.Deadline == "" {
		missing = append(missing, string(task.FieldDeadline))
	}
	if draft.Priority == "" {
		missing = append(missing, string(task.FieldPriority))
	}

	if len(missing) > 0 {
		return NewValidationError(missing)
	}
	return nil
}
