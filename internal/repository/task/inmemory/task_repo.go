package inmemory

import (
	"context"
	"slices"
	"sync"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("taskBoard/internal/repository/task/inmemory")

// TaskStorage keeps tasks in insertion order. Every write is applied under
// the write lock, so List never sees a half-applied change.
type TaskStorage struct {
	storage map[uuid.UUID]task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: storage is reachable", zap.Int("tasks", s.Len()))
	return nil
}

// Add assigns a fresh id to the draft and appends it.
func (s *TaskStorage) Add(ctx context.Context, draft task.Draft) task.Task {
	_, span := tracer.Start(ctx, "TaskStorage.Add")
	defer span.End()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := uuid.New()
	for s.exists(id) {
		id = uuid.New()
	}

	created := draft.WithID(id)
	s.storage[id] = created
	s.ids = append(s.ids, id)

	span.SetAttributes(attribute.String("task.id", id.String()))
	return created
}

// Update replaces the task with the given id. The id itself never changes.
func (s *TaskStorage) Update(ctx context.Context, id uuid.UUID, patch task.Task) error {
	_, span := tracer.Start(ctx, "TaskStorage.Update",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		span.SetAttributes(attribute.Bool("task.found", false))
		return repo.ErrNotFound
	}

	patch.ID = id
	s.storage[id] = patch

	span.SetAttributes(attribute.Bool("task.found", true))
	return nil
}

// Remove deletes the task if it exists; absent ids are ignored.
func (s *TaskStorage) Remove(ctx context.Context, id uuid.UUID) {
	_, span := tracer.Start(ctx, "TaskStorage.Remove",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		span.SetAttributes(attribute.Bool("task.found", false))
		return
	}

	delete(s.storage, id)
	if ind := slices.Index(s.ids, id); ind >= 0 {
		s.ids = slices.Delete(s.ids, ind, ind+1)
	}
	span.SetAttributes(attribute.Bool("task.found", true))
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return task.Task{}, repo.ErrNotFound
	}
	return taskToGet, nil
}

// List returns a copy of all tasks in insertion order.
func (s *TaskStorage) List(ctx context.Context) []task.Task {
	_, span := tracer.Start(ctx, "TaskStorage.List")
	defer span.End()

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id])
	}

	span.SetAttributes(attribute.Int("task.count", len(res)))
	return res
}

// exists must be called with the lock held.
func (s *TaskStorage) exists(id uuid.UUID) bool {
	_, ok := s.storage[id]
	return ok
}

func (s *TaskStorage) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.ids)
}
