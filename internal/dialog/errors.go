package dialog

import "fmt"

const CodeValidation = "VALIDATION_ERROR"

// MsgAllFieldsRequired is shown inline when the add form is incomplete.
const MsgAllFieldsRequired = "All fields are required!"

type ValidationError struct {
	Code    string
	Message string
	Details map[string]any
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

func NewValidationError(missing []string) *ValidationError {
	return &ValidationError{
		Code:    CodeValidation,
		Message: MsgAllFieldsRequired,
		Details: map[string]any{
			"missing": missing,
		},
	}
}
