package shell

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"taskBoard/internal/dialog"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/table"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store interface {
	dialog.Store
	table.Source
	GetByID(ctx context.Context, id uuid.UUID) (task.Task, error)
}

// Shell holds the UI state of the task page: the table view and the three
// dialogs. Dispatch and Page are serialized, so one command runs at a time.
type Shell struct {
	mu     sync.Mutex
	store  Store
	engine *table.Engine
	add    *dialog.AddDialog
	edit   *dialog.EditDialog
	del    *dialog.DeleteDialog
}

func New(store Store) *Shell {
	return &Shell{
		store:  store,
		engine: table.NewEngine(store),
		add:    dialog.NewAddDialog(store),
		edit:   dialog.NewEditDialog(store),
		del:    dialog.NewDeleteDialog(store),
	}
}

func (s *Shell) Dispatch(ctx context.Context, cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("%T", cmd)
	if err := cmd.apply(ctx, s); err != nil {
		logger.Warn("Shell: command rejected", zap.String("command", name), zap.Error(err))
		return err
	}
	logger.Info("Shell: command applied", zap.String("command", name))
	return nil
}

type Header struct {
	Key       string
	Label     string
	Direction string
}

type AddState struct {
	Open  bool
	Draft task.Draft
	Error string
}

type EditState struct {
	Open bool
	Task task.Task
}

type DeleteState struct {
	Open bool
	Task task.Task
}

// Page is a read-only snapshot used for rendering.
type Page struct {
	Filter     string
	Sorting    table.Sorting
	Headers    []Header
	Rows       []table.Row
	Add        AddState
	Edit       EditState
	Delete     DeleteState
	Statuses   []task.Status
	Priorities []task.Priority
}

func (s *Shell) Page(ctx context.Context) Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorting := s.engine.Sorting()
	headers := make([]Header, 0, len(s.engine.Columns()))
	for _, c := range s.engine.Columns() {
		headers = append(headers, Header{
			Key:       c.Key,
			Label:     c.Label,
			Direction: sorting.Direction(c.Key),
		})
	}

	page := Page{
		Filter:  s.engine.Filter(),
		Sorting: sorting,
		Headers: headers,
		Rows:    slices.Collect(s.engine.Rows(ctx)),
		Add: AddState{
			Open:  s.add.IsOpen(),
			Draft: s.add.Draft(),
			Error: s.add.ErrorMessage(),
		},
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
	}
	page.Edit.Task, page.Edit.Open = s.edit.Snapshot()
	page.Delete.Task, page.Delete.Open = s.del.Target()
	return page
}
