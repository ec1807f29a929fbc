package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/repository/task/inmemory"
	"taskBoard/internal/shell"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "task-board"

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	store     *inmemory.TaskStorage
	shell     *shell.Shell
	shutdowns []func(context.Context) error // run in reverse order
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context) error, 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) error {
		logger.Info("App: flushing logs")
		logger.Sync()
		return nil
	})

	a.store = inmemory.NewTaskStorage()
	a.shell = shell.New(a.store)
	a.router = a.routes()

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, serviceName),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
	a.shutdowns = append(a.shutdowns, func(ctx context.Context) error {
		logger.Info("App: stopping HTTP server")
		return a.server.Shutdown(ctx)
	})

	logger.Info("App: initialized", zap.String("addr", a.server.Addr))
	return nil
}

// Handler exposes the routed handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) routes() *chi.Mux {
	pageHandler := handlers.NewPageHandler(a.shell)
	taskHandler := handlers.NewTaskHandler(a.store)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimit(a.config.HTTP.RateLimitRPM))
	r.Use(chimw.Timeout(a.config.HTTP.RequestTimeout))

	pageHandler.Routes(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.config.HTTP.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))

		r.Get("/health", taskHandler.HealthCheck) // GET /api/health

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks) // GET /api/tasks
			r.Post("/", taskHandler.PostTask) // POST /api/tasks

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTaskByID)       // GET /api/tasks/{id}
				r.Put("/", taskHandler.UpdateTaskByID)    // PUT /api/tasks/{id}
				r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /api/tasks/{id}
			})
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		return errors.New("app is not initialized")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	var err error
	for _, fn := range slices.Backward(a.shutdowns) {
		err = multierr.Append(err, fn(ctx))
	}
	a.shutdowns = nil
	return err
}
