package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openaccel/accml-core/internal/backend"
	"github.com/openaccel/accml-core/internal/backend/delta"
	"github.com/openaccel/accml-core/internal/infrastructure/config"
	"github.com/openaccel/accml-core/internal/infrastructure/logging"
	"github.com/openaccel/accml-core/internal/liaison"
	"github.com/openaccel/accml-core/internal/model"
	"github.com/openaccel/accml-core/internal/rewriter"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// TuneSource serves the machine's derived working point and the recovery
// from a failed calculation. *sim.Backend satisfies it; a live deployment
// may leave it unset.
type TuneSource interface {
	Tune(ctx context.Context) (model.Tune, error)
	Clear() error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config      config.APIConfig
	Logger      *logging.Logger
	Backend     backend.ReadWriter
	Rewriter    *rewriter.Rewriter
	YellowPages *liaison.YellowPages
	Machine     TuneSource   // optional: nil disables /machine endpoints
	DeltaCache  *delta.Cache // optional: nil disables the delta reference clear endpoint
	Version     string
}

// Server is the HTTP API server for accml.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg         config.APIConfig
	logger      *logging.Logger
	backend     backend.ReadWriter
	rewriter    *rewriter.Rewriter
	yellowPages *liaison.YellowPages
	machine     TuneSource
	deltaCache  *delta.Cache
	version     string
	server      *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if deps.Rewriter == nil {
		return nil, fmt.Errorf("rewriter is required")
	}
	if deps.YellowPages == nil {
		return nil, fmt.Errorf("yellow pages is required")
	}

	return &Server{
		cfg:         deps.Config,
		logger:      deps.Logger,
		backend:     deps.Backend,
		rewriter:    deps.Rewriter,
		yellowPages: deps.YellowPages,
		machine:     deps.Machine,
		deltaCache:  deps.DeltaCache,
		version:     deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It sets up the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
