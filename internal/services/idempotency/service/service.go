// Package service implements the idempotency guard over the marks repo
package service

import (
	"context"
	"time"

	"bankingops/internal/platform/logger"
	"bankingops/internal/services/idempotency/domain"
	"bankingops/internal/services/idempotency/repo"
)

// Service implements domain.Guard
type Service struct {
	repo repo.Repo
	now  func() time.Time
	log  *logger.Logger
}

// New constructs the guard
func New(r repo.Repo) *Service {
	return &Service{repo: r, now: time.Now, log: logger.Named("idempotency")}
}

// WithClock swaps the clock used for recorded_at
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WasProcessed implements domain.Guard
func (s *Service) WasProcessed(ctx context.Context, key domain.Key) (bool, error) {
	return s.repo.Exists(ctx, key)
}

// MarkProcessed implements domain.Guard
// a racing invocation that marked first turns into a logged no-op
func (s *Service) MarkProcessed(ctx context.Context, key domain.Key, expiresAt *time.Time) error {
	inserted, err := s.repo.Insert(ctx, domain.Mark{
		Key:        key,
		RecordedAt: s.now().UTC(),
		ExpiresAt:  utc(expiresAt),
	})
	if err != nil {
		return err
	}
	if !inserted {
		logger.C(ctx).Info().Str("key", string(key)).Msg("operation already marked by a concurrent invocation")
	}
	return nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
