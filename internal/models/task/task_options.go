package task

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown task field")

type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldDeadline    Field = "deadline"
	FieldStatus      Field = "status"
	FieldPriority    Field = "priority"
)

// DraftOption mutates a single field of a draft.
type DraftOption func(*Draft)

func WithName(name string) DraftOption {
	return func(d *Draft) {
		d.Name = name
	}
}

func WithDescription(description string) DraftOption {
	return func(d *Draft) {
		d.Description = description
	}
}

func WithDeadline(deadline string) DraftOption {
	return func(d *Draft) {
		d.Deadline = deadline
	}
}

func WithStatus(status Status) DraftOption {
	return func(d *Draft) {
		d.Status = status
	}
}

func WithPriority(priority Priority) DraftOption {
	return func(d *Draft) {
		d.Priority = priority
	}
}

// FieldOption turns a form field into a draft option. Status and priority
// must be known values or empty.
func FieldOption(field Field, value string) (DraftOption, error) {
	switch field {
	case FieldName:
		return WithName(value), nil
	case FieldDescription:
		return WithDescription(value), nil
	case FieldDeadline:
		return WithDeadline(value), nil
	case FieldStatus:
		status, err := ParseStatus(value)
		if err != nil {
			return nil, err
		}
		return WithStatus(status), nil
	case FieldPriority:
		priority, err := ParsePriority(value)
		if err != nil {
			return nil, err
		}
		return WithPriority(priority), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (d *Draft) Apply(opts ...DraftOption) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(d)
	}
}
