// Package domain defines the decision log entries written per dispatched operation
package domain

import (
	"context"
	"time"

	perr "bankingops/internal/platform/errors"
)

// Outcome is how a dispatched operation ended
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// OutcomeOf classifies err: nil is ok, input and policy errors are rejections, the rest failures
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case perr.Verbatim(err):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

// Decision is one row of the decision log
type Decision struct {
	At            time.Time
	Operation     string
	CorrelationID string
	RecordID      string
	Outcome       Outcome
	Category      string
	Code          perr.ErrorCode
	ElapsedMS     uint32
}

// Recorder accepts decisions; implementations must not fail the caller
type Recorder interface {
	Record(ctx context.Context, d Decision)
}

// Nop drops every decision
type Nop struct{}

// Record implements Recorder
func (Nop) Record(context.Context, Decision) {}
