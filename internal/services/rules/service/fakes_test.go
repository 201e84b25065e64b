package service

import (
	"context"
	"sync"
	"time"

	"bankingops/internal/adapters/fraudscore"
	"bankingops/internal/platform/config"
	perr "bankingops/internal/platform/errors"
	idem "bankingops/internal/services/idempotency/domain"
	records "bankingops/internal/services/records/domain"
	settingsvc "bankingops/internal/services/settings/service"

	"github.com/shopspring/decimal"
)

type memStore struct {
	mu        sync.Mutex
	rows      map[string]map[string]any
	reads     int
	updates   []map[string]any
	updateErr error
}

func newStore() *memStore { return &memStore{rows: map[string]map[string]any{}} }

func (m *memStore) put(entity, id string, fields map[string]any) {
	m.rows[entity+"/"+id] = fields
}

func (m *memStore) Retrieve(_ context.Context, entity, id string, fields ...string) (records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	row, ok := m.rows[entity+"/"+id]
	if !ok {
		return records.Record{}, perr.NotFoundf("%s %s not found", entity, id)
	}
	out := map[string]any{}
	for _, f := range fields {
		if v, ok := row[f]; ok {
			out[f] = v
		}
	}
	return records.Record{Entity: entity, ID: id, Fields: out}, nil
}

func (m *memStore) Update(_ context.Context, entity, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, fields)
	row := m.rows[entity+"/"+id]
	if row == nil {
		row = map[string]any{}
		m.rows[entity+"/"+id] = row
	}
	for k, v := range fields {
		row[k] = v
	}
	return nil
}

func (m *memStore) Create(context.Context, string, map[string]any) (string, error) {
	return "", perr.Internalf("not used")
}

func (m *memStore) Query(context.Context, string, map[string]any, int) ([]records.Record, error) {
	return nil, nil
}

type overrides map[string]string

func (o overrides) LookupOverride(_ context.Context, name string) (string, bool, error) {
	v, ok := o[name]
	return v, ok, nil
}

type memGuard struct {
	marks   map[idem.Key]*time.Time
	checks  int
	markErr error
}

func newGuard() *memGuard { return &memGuard{marks: map[idem.Key]*time.Time{}} }

func (g *memGuard) WasProcessed(_ context.Context, key idem.Key) (bool, error) {
	g.checks++
	_, ok := g.marks[key]
	return ok, nil
}

func (g *memGuard) MarkProcessed(_ context.Context, key idem.Key, exp *time.Time) error {
	if g.markErr != nil {
		return g.markErr
	}
	g.marks[key] = exp
	return nil
}

type fakeScorer struct {
	score decimal.Decimal
	err   error
	calls []fraudscore.Request
}

func (f *fakeScorer) Score(_ context.Context, in fraudscore.Request) (decimal.Decimal, error) {
	f.calls = append(f.calls, in)
	return f.score, f.err
}

type harness struct {
	store  *memStore
	over   overrides
	guard  *memGuard
	scorer *fakeScorer
	svc    *Service
}

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newHarness() *harness {
	h := &harness{
		store:  newStore(),
		over:   overrides{},
		guard:  newGuard(),
		scorer: &fakeScorer{},
	}
	resolver := settingsvc.New(h.over, config.New().Prefix("BANKINGOPS_TEST_SECRET_"))
	h.svc = New(Deps{
		Records:  h.store,
		Settings: resolver,
		Guard:    h.guard,
		Fraud:    h.scorer,
	}, Config{MarkTTL: time.Hour})
	h.svc.now = func() time.Time { return fixedNow }
	return h
}
