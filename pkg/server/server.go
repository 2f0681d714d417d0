package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudstub/cloudstub/pkg/functions"
	"github.com/cloudstub/cloudstub/pkg/logging"
	"github.com/cloudstub/cloudstub/pkg/logs"
	"github.com/cloudstub/cloudstub/pkg/objectstore"
)

// Server is the HTTP front end over the emulated stores. It owns no
// state of its own: every request resolves a tenant scope and delegates
// to the relevant store.
type Server struct {
	logs      *logs.Store
	objects   *objectstore.Store
	functions *functions.Store

	httpServer *http.Server
	log        *slog.Logger
	startTime  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a Server bound to addr, serving the given stores.
func New(addr string, logStore *logs.Store, objStore *objectstore.Store, fnStore *functions.Store, opts ...Option) *Server {
	s := &Server{
		logs:      logStore,
		objects:   objStore,
		functions: fnStore,
		log:       logging.Nop(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler builds the route table wrapped in the standard middleware.
// Exposed so tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /logs/groups", s.handleAppendGroups)
	mux.HandleFunc("GET /logs/groups", s.handleListGroups)
	mux.HandleFunc("POST /logs/groups/{group}/streams", s.handleAppendStreams)
	mux.HandleFunc("GET /logs/groups/{group}/streams", s.handleListStreams)
	mux.HandleFunc("POST /logs/groups/{group}/streams/{stream}/events", s.handleAppendEvents)
	mux.HandleFunc("GET /logs/groups/{group}/streams/{stream}/events", s.handleQueryEvents)

	mux.HandleFunc("POST /storage/buckets/{bucket}/objects", s.handleAppendObjects)
	mux.HandleFunc("GET /storage/buckets/{bucket}/objects", s.handleListObjects)

	mux.HandleFunc("POST /functions", s.handleAppendFunctions)
	mux.HandleFunc("GET /functions", s.handleListFunctions)

	return s.withRecovery(s.withRequestLog(mux))
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.log.Info("server listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Uptime reports how long the server has been up.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}
