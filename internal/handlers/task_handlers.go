package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"taskBoard/internal/dialog"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/repository"
	"taskBoard/internal/table"
	"time"

	"go.uber.org/zap"
)

// TaskHandler serves the JSON API over the same store the page uses.
type TaskHandler struct {
	Store TaskStore
}

func NewTaskHandler(store TaskStore) TaskHandler {
	return TaskHandler{
		Store: store,
	}
}

// ListTasks returns the table rows for ?q=&sort=&desc= without touching the page state.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := r.URL.Query()
	sorting := table.Sorting{Column: query.Get("sort")}
	if raw := query.Get("desc"); raw != "" {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			logger.Warn("HTTP: invalid query parameter",
				zap.String("query", "desc"),
				zap.Error(err))
			responseWithError(w, http.StatusBadRequest, codeBadRequest, "desc must be a boolean")
			return
		}
		sorting.Desc = desc
	}

	tasks, err := table.Apply(h.Store.List(r.Context()), table.DefaultColumns(), query.Get("q"), sorting)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logger.Info("HTTP_OUT: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("tasks", dto.FromTaskList(tasks)),
		toPayload("count", len(tasks)),
	)
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: unsupported content type",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, codeBadRequest, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: cannot decode JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	draft, err := request.Draft()
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if vErr := dialog.ValidateDraft(draft); vErr != nil {
		handleDomainError(w, vErr)
		return
	}

	created := h.Store.Add(r.Context(), draft)

	logger.Info("HTTP_OUT: task created",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(created)))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, err := idParam(r)
	if err != nil {
		logger.Warn("HTTP: invalid id", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, codeBadRequest, "invalid id: "+err.Error())
		return
	}

	found, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(found)))
}

// UpdateTaskByID patches the given fields. Like the edit dialog it does not validate them.
func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, err := idParam(r)
	if err != nil {
		logger.Warn("HTTP: invalid id", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, codeBadRequest, "invalid id: "+err.Error())
		return
	}

	var request dto.UpdateTaskRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: cannot decode JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "invalid update body: "+err.Error())
		return
	}

	opts, err := request.Options()
	if err != nil {
		handleDomainError(w, err)
		return
	}

	existing, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	draft := existing.Draft()
	draft.Apply(opts...)
	updated := draft.WithID(id)

	if err := h.Store.Update(r.Context(), id, updated); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Error("HTTP: update failed", err, zap.String("task_id", id.String()))
		}
		handleDomainError(w, err)
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated)))
}

// DeleteTaskByID always answers 204: removing an absent task is not an error.
func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, err := idParam(r)
	if err != nil {
		logger.Warn("HTTP: invalid id", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, codeBadRequest, "invalid id: "+err.Error())
		return
	}

	h.Store.Remove(r.Context(), id)

	logger.Info("HTTP_OUT: task deleted",
		zap.String("task_id", id.String()),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.Store.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: health check failed", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", "task-board"),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", "task-board"),
		toPayload("tasks", h.Store.Len()),
	)
}
