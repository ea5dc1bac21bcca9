// Package server runs the site's http.Server and shuts it down gracefully
// when the run context ends.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/schemadeck/core/logger"
)

var (
	ErrMissingAddress       = errors.New("server: address is required")
	ErrServerAlreadyRunning = errors.New("server: already running")
	ErrListen               = errors.New("server: listen failed")
	ErrServe                = errors.New("server: serve failed")
	ErrShutdown             = errors.New("server: shutdown failed")
)

// Server wraps http.Server. Safe for concurrent use.
type Server struct {
	cfg Config
	log *slog.Logger

	mu       sync.RWMutex
	listener net.Listener
	srv      *http.Server
}

// New returns a Server listening on addr with default timeouts.
func New(addr string, opts ...Option) *Server {
	cfg := DefaultConfig()
	cfg.Addr = addr
	s, _ := NewFromConfig(cfg, opts...)
	return s
}

// NewFromConfig builds a Server from cfg. Zero durations keep the defaults.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}
	s := &Server{cfg: cfg.withDefaults(), log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Addr returns the bound address while listening and the configured
// address otherwise.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Start listens and serves h until ctx is canceled or serving fails. On
// cancellation it returns ctx.Err() and leaves draining to Stop.
func (s *Server) Start(ctx context.Context, h http.Handler) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrListen, err)
	}
	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.listener, s.srv = ln, srv
	s.mu.Unlock()

	s.log.InfoContext(ctx, "server listening", logger.Component("server"), slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		s.reset()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrServe, err)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) reset() {
	s.mu.Lock()
	s.listener, s.srv = nil, nil
	s.mu.Unlock()
}

// Stop drains connections within Config.ShutdownTimeout. Stopping a
// server that is not running is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	log := s.log.With(logger.Component("server"))
	log.Info("shutting down server", slog.Duration("timeout", s.cfg.ShutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	s.reset()
	if err != nil {
		log.Error("server shutdown failed", logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}
	log.Info("server stopped")
	return nil
}

// Run adapts Start and Stop to errgroup.Group.Go: it serves until ctx is
// canceled and then shuts down.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, h)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.Stop()
		}
		return err
	}
}
