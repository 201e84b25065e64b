// Package service records dispatch decisions without ever failing the caller
package service

import (
	"context"
	"time"

	"bankingops/internal/platform/logger"
	"bankingops/internal/services/audit/domain"
)

// Writer persists decisions
type Writer interface {
	Insert(ctx context.Context, ds ...domain.Decision) error
}

// Service implements domain.Recorder
type Service struct {
	w       Writer
	timeout time.Duration
	log     *logger.Logger
}

// New wraps w; each write gets its own timeout detached from the request context
func New(w Writer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Service{w: w, timeout: timeout, log: logger.Named("audit")}
}

// Record implements domain.Recorder
func (s *Service) Record(ctx context.Context, d domain.Decision) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.w.Insert(wctx, d); err != nil {
		s.log.Warn().Err(err).
			Str("operation", d.Operation).
			Str("correlation_id", d.CorrelationID).
			Msg("decision log write failed")
	}
}
