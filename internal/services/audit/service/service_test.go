package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bankingops/internal/services/audit/domain"

	"github.com/stretchr/testify/assert"
)

type fakeWriter struct {
	got      []domain.Decision
	err      error
	deadline bool
	ctxErr   error
}

func (f *fakeWriter) Insert(ctx context.Context, ds ...domain.Decision) error {
	_, f.deadline = ctx.Deadline()
	f.ctxErr = ctx.Err()
	f.got = append(f.got, ds...)
	return f.err
}

func TestRecord_WritesWithOwnDeadline(t *testing.T) {
	w := &fakeWriter{}
	s := New(w, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Record(ctx, domain.Decision{Operation: "GetFxQuote", Outcome: domain.OutcomeOK})

	assert.Len(t, w.got, 1)
	assert.True(t, w.deadline)
	assert.NoError(t, w.ctxErr, "request cancellation must not abort the log write")
}

func TestRecord_SwallowsErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("ch down")}
	s := New(w, 0)
	assert.NotPanics(t, func() {
		s.Record(context.Background(), domain.Decision{Operation: "ScoreFraudRisk"})
	})
	assert.Equal(t, 2*time.Second, s.timeout)
}
