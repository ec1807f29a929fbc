package handlers

import (
	"errors"
	"net/http"
	"taskBoard/internal/dialog"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"
	"taskBoard/internal/table"

	"go.uber.org/zap"
)

const (
	codeNotFound   = "NOT_FOUND"
	codeBadRequest = "BAD_REQUEST"
	codeInternal   = "INTERNAL"
)

// statusFor maps domain errors to an HTTP status and an error code.
func statusFor(err error) (int, string) {
	var vErr *dialog.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Code
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, table.ErrUnknownColumn), errors.Is(err, task.ErrUnknownField),
		errors.Is(err, task.ErrInvalidStatus), errors.Is(err, task.ErrInvalidPriority):
		return http.StatusBadRequest, codeBadRequest
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	statusCode, code := statusFor(err)

	logger.Warn("HTTP: domain error",
		zap.String("error_code", code),
		zap.Int("http_status", statusCode),
		zap.Error(err))

	message := err.Error()
	var vErr *dialog.ValidationError
	if errors.As(err, &vErr) {
		message = vErr.Message
	}
	responseWithError(w, statusCode, code, message)
}
