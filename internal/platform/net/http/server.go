package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"bankingops/internal/platform/config"
	"bankingops/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root mux and the listener lifecycle
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	drain time.Duration
}

// NewServer reads API_PORT, API_READ_HEADER_TIMEOUT, API_IDLE_TIMEOUT and API_SHUTDOWN_TIMEOUT from cfg
func NewServer(cfg config.Conf) *Server {
	c := cfg.Prefix("API_")
	mux := chi.NewRouter()
	return &Server{
		mux:   mux,
		drain: c.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		srv: &stdhttp.Server{
			Addr:              c.MayString("PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: c.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			IdleTimeout:       c.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router returns the root router
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains in-flight requests within the shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	served := make(chan error, 1)
	go func() { served <- s.srv.ListenAndServe() }()
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()
	if err := s.srv.Shutdown(drainCtx); err != nil {
		return err
	}
	if err := <-served; !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	log.Info().Msg("http drained")
	return nil
}
