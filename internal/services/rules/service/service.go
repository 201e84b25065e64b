// Package service implements the banking rules over the record store, settings and guard
package service

import (
	"context"
	"time"

	"bankingops/internal/adapters/fraudscore"
	perr "bankingops/internal/platform/errors"
	idem "bankingops/internal/services/idempotency/domain"
	records "bankingops/internal/services/records/domain"
	"bankingops/internal/services/rules/domain"
	settings "bankingops/internal/services/settings/domain"

	"github.com/shopspring/decimal"
)

// FraudScorer is the outbound scoring call
type FraudScorer interface {
	Score(ctx context.Context, in fraudscore.Request) (decimal.Decimal, error)
}

// Config tunes the rules service
type Config struct {
	// MarkTTL is attached to idempotency marks; zero writes marks without expiry
	MarkTTL time.Duration
}

// Deps are the collaborators every rule reads and writes through
type Deps struct {
	Records  records.Store
	Settings settings.Resolver
	Guard    idem.Guard
	Fraud    FraudScorer
}

// Service implements domain.Engine
type Service struct {
	records  records.Store
	settings settings.Resolver
	guard    idem.Guard
	fraud    FraudScorer
	cfg      Config
	now      func() time.Time
}

// New constructs the rules service
func New(d Deps, cfg Config) *Service {
	return &Service{
		records:  d.Records,
		settings: d.Settings,
		guard:    d.Guard,
		fraud:    d.Fraud,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Service) expiry() *time.Time {
	if s.cfg.MarkTTL <= 0 {
		return nil
	}
	t := s.now().UTC().Add(s.cfg.MarkTTL)
	return &t
}

// customer loads a customer record, turning an unknown id into an input error
func (s *Service) customer(ctx context.Context, entity, id string, fields ...string) (records.Record, error) {
	if entity == "" {
		entity = domain.CustomerEntity
	}
	rec, err := s.records.Retrieve(ctx, entity, id, fields...)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return records.Record{}, perr.InvalidArgf("Customer %s was not found.", id)
		}
		return records.Record{}, err
	}
	return rec, nil
}

// money reads a monetary field, absent fields count as zero
func money(rec *records.Record, field string) (decimal.Decimal, error) {
	d, ok, err := rec.Decimal(field)
	if err != nil {
		return decimal.Zero, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s %s has a malformed field", rec.Entity, rec.ID)
	}
	if !ok {
		return decimal.Zero, nil
	}
	return d, nil
}
