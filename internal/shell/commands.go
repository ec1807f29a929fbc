package shell

import (
	"context"
	"errors"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Command is one user gesture. Commands are applied by Shell.Dispatch.
type Command interface {
	apply(ctx context.Context, s *Shell) error
}

// Fields carries raw form values keyed by field name.
type Fields map[task.Field]string

func (f Fields) options() ([]task.DraftOption, error) {
	opts := make([]task.DraftOption, 0, len(f))
	for field, value := range f {
		opt, err := task.FieldOption(field, value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

type Search struct {
	Query string
}

func (c Search) apply(ctx context.Context, s *Shell) error {
	s.engine.SetFilter(c.Query)
	return nil
}

type ToggleSort struct {
	Column string
}

func (c ToggleSort) apply(ctx context.Context, s *Shell) error {
	return s.engine.ToggleSort(c.Column)
}

type OpenAdd struct{}

func (OpenAdd) apply(ctx context.Context, s *Shell) error {
	s.add.Open()
	return nil
}

// SubmitAdd copies the form into the draft and submits it.
// It is the only command that can fail with a *dialog.ValidationError.
type SubmitAdd struct {
	Fields Fields
}

func (c SubmitAdd) apply(ctx context.Context, s *Shell) error {
	opts, err := c.Fields.options()
	if err != nil {
		return err
	}
	s.add.UpdateField(opts...)
	_, err = s.add.Submit(ctx)
	return err
}

type CancelAdd struct{}

func (CancelAdd) apply(ctx context.Context, s *Shell) error {
	s.add.Cancel()
	return nil
}

type OpenEdit struct {
	ID uuid.UUID
}

func (c OpenEdit) apply(ctx context.Context, s *Shell) error {
	t, ok := s.lookup(ctx, c.ID)
	if ok {
		s.edit.Open(t)
	}
	return nil
}

type SubmitEdit struct {
	Fields Fields
}

func (c SubmitEdit) apply(ctx context.Context, s *Shell) error {
	opts, err := c.Fields.options()
	if err != nil {
		return err
	}
	s.edit.UpdateField(opts...)
	s.edit.Submit(ctx)
	return nil
}

type CloseEdit struct{}

func (CloseEdit) apply(ctx context.Context, s *Shell) error {
	s.edit.Close()
	return nil
}

type RequestDelete struct {
	ID uuid.UUID
}

func (c RequestDelete) apply(ctx context.Context, s *Shell) error {
	t, ok := s.lookup(ctx, c.ID)
	if ok {
		s.del.RequestDelete(t)
	}
	return nil
}

type ConfirmDelete struct{}

func (ConfirmDelete) apply(ctx context.Context, s *Shell) error {
	s.del.Confirm(ctx)
	return nil
}

type CancelDelete struct{}

func (CancelDelete) apply(ctx context.Context, s *Shell) error {
	s.del.Cancel()
	return nil
}

// lookup resolves a row id. Stale ids are logged and ignored.
func (s *Shell) lookup(ctx context.Context, id uuid.UUID) (task.Task, bool) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Shell: task not found", zap.String("task_id", id.String()))
		} else {
			logger.Error("Shell: task lookup failed", err, zap.String("task_id", id.String()))
		}
		return task.Task{}, false
	}
	return t, true
}
