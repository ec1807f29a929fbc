package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"taskBoard/internal/dialog"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/shell"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"inc": func(n int) int { return n + 1 },
}).ParseFS(templateFS, "templates/page.html"))

// PageHandler renders the task page and turns form posts into shell commands.
type PageHandler struct {
	Shell UIShell
}

func NewPageHandler(s UIShell) PageHandler {
	return PageHandler{Shell: s}
}

func (h *PageHandler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/search", h.Search)
	r.Post("/sort/{column}", h.Sort)

	r.Route("/dialogs", func(r chi.Router) {
		r.Post("/add/open", h.command(func(*http.Request) (shell.Command, error) { return shell.OpenAdd{}, nil }))
		r.Post("/add/submit", h.SubmitAdd)
		r.Post("/add/cancel", h.command(func(*http.Request) (shell.Command, error) { return shell.CancelAdd{}, nil }))

		r.Post("/edit/save", h.command(func(r *http.Request) (shell.Command, error) {
			fields, err := formFields(r, task.FieldName, task.FieldDescription, task.FieldDeadline, task.FieldStatus, task.FieldPriority)
			return shell.SubmitEdit{Fields: fields}, err
		}))
		r.Post("/edit/close", h.command(func(*http.Request) (shell.Command, error) { return shell.CloseEdit{}, nil }))

		r.Post("/delete/confirm", h.command(func(*http.Request) (shell.Command, error) { return shell.ConfirmDelete{}, nil }))
		r.Post("/delete/cancel", h.command(func(*http.Request) (shell.Command, error) { return shell.CancelDelete{}, nil }))
	})

	r.Route("/tasks/{id}", func(r chi.Router) {
		r.Post("/edit", h.command(func(r *http.Request) (shell.Command, error) {
			id, err := idParam(r)
			return shell.OpenEdit{ID: id}, err
		}))
		r.Post("/delete", h.command(func(r *http.Request) (shell.Command, error) {
			id, err := idParam(r)
			return shell.RequestDelete{ID: id}, err
		}))
	})
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK)
}

func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, err)
		return
	}
	h.dispatch(w, r, shell.Search{Query: r.PostForm.Get("q")})
}

func (h *PageHandler) Sort(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, shell.ToggleSort{Column: chi.URLParam(r, "column")})
}

// SubmitAdd re-renders the page with the inline message when the form is incomplete.
func (h *PageHandler) SubmitAdd(w http.ResponseWriter, r *http.Request) {
	fields, err := formFields(r, task.FieldName, task.FieldDescription, task.FieldDeadline, task.FieldPriority)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	err = h.Shell.Dispatch(r.Context(), shell.SubmitAdd{Fields: fields})
	var vErr *dialog.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.render(w, r, http.StatusUnprocessableEntity)
	case err != nil:
		h.fail(w, err)
	default:
		redirectHome(w, r)
	}
}

func (h *PageHandler) command(build func(*http.Request) (shell.Command, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := build(r)
		if err != nil {
			h.badRequest(w, err)
			return
		}
		h.dispatch(w, r, cmd)
	}
}

func (h *PageHandler) dispatch(w http.ResponseWriter, r *http.Request, cmd shell.Command) {
	if err := h.Shell.Dispatch(r.Context(), cmd); err != nil {
		h.fail(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, code int) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, h.Shell.Page(r.Context())); err != nil {
		logger.Error("HTTP: page render failed", err)
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) badRequest(w http.ResponseWriter, err error) {
	logger.Warn("HTTP: invalid form", zap.Error(err))
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (h *PageHandler) fail(w http.ResponseWriter, err error) {
	code, errCode := statusFor(err)
	logger.Warn("HTTP: command failed",
		zap.String("error_code", errCode),
		zap.Int("http_status", code),
		zap.Error(err))
	http.Error(w, err.Error(), code)
}

// formFields collects the listed fields that are present in the posted form.
func formFields(r *http.Request, fields ...task.Field) (shell.Fields, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	res := make(shell.Fields, len(fields))
	for _, f := range fields {
		if values, ok := r.PostForm[string(f)]; ok && len(values) > 0 {
			res[f] = values[0]
		}
	}
	return res, nil
}
