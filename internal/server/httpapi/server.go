// Package httpapi is the HTTP transport of gophtasks: routing, bearer-token
// gate, request/response encoding and error mapping.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/observability"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, caller auth.Identity, id int64, upd services.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) error
}

type TaskService interface {
	Create(ctx context.Context, userID int64, title string, description *string, status models.TaskStatus) (*models.Task, error)
	List(ctx context.Context, userID int64) ([]models.Task, error)
	Get(ctx context.Context, userID, id int64) (*models.Task, error)
	UpdateStatus(ctx context.Context, userID, id int64, status models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}

// TokenResolver is satisfied by *auth.Guard.
type TokenResolver interface {
	Resolve(token string) (auth.Identity, error)
}

type HTTPServer struct {
	address string
	users   UserService
	tasks   TaskService
	guard   TokenResolver
	metrics *observability.Metrics
	logger  logging.Logger
	now     func() time.Time
}

// NewHTTPServer wires the API. metrics may be nil when the observability
// server is disabled.
func NewHTTPServer(addr string, l logging.Logger, us UserService, ts TaskService, guard TokenResolver, m *observability.Metrics) *HTTPServer {
	return &HTTPServer{
		address: addr,
		users:   us,
		tasks:   ts,
		guard:   guard,
		metrics: m,
		logger:  l.With("module", "http_server"),
		now:     time.Now,
	}
}

// Handler returns the routed API with the request-id and instrumentation
// middlewares applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHealth)

	mux.HandleFunc("POST /auth/token", s.handleLogin)
	mux.Handle("GET /auth/read_current_user", s.RequireIdentity(http.HandlerFunc(s.handleCurrentUser)))

	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.Handle("PUT /users/{id}", s.RequireIdentity(http.HandlerFunc(s.handleUpdateUser)))
	mux.Handle("DELETE /users/{id}", s.RequireIdentity(http.HandlerFunc(s.handleDeleteUser)))

	mux.Handle("POST /task", s.RequireIdentity(http.HandlerFunc(s.handleCreateTask)))
	mux.Handle("GET /task", s.RequireIdentity(http.HandlerFunc(s.handleListTasks)))
	mux.Handle("GET /task/{id}", s.RequireIdentity(http.HandlerFunc(s.handleGetTask)))
	mux.Handle("PUT /task/{id}", s.RequireIdentity(http.HandlerFunc(s.handleUpdateTask)))
	mux.Handle("DELETE /task/{id}", s.RequireIdentity(http.HandlerFunc(s.handleDeleteTask)))

	return s.requestID(s.instrument(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
