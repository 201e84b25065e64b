// Package service maps invocations onto rules and shapes their results
package service

import (
	"context"
	"runtime/debug"
	"time"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/logger"
	audit "bankingops/internal/services/audit/domain"
	"bankingops/internal/services/dispatch/domain"
	rules "bankingops/internal/services/rules/domain"

	"github.com/google/uuid"
)

type handler func(ctx context.Context, in domain.Invocation) (domain.Outputs, error)

// Service implements domain.Dispatcher
type Service struct {
	engine   rules.Engine
	audit    audit.Recorder
	profile  domain.Profile
	handlers map[string]handler

	now   func() time.Time
	newID func() string
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithIDs replaces the correlation id generator
func WithIDs(gen func() string) Option { return func(s *Service) { s.newID = gen } }

// New builds a dispatcher; a nil recorder drops decisions
func New(engine rules.Engine, rec audit.Recorder, profile domain.Profile, opts ...Option) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	s := &Service{
		engine:  engine,
		audit:   rec,
		profile: profile,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.handlers = map[string]handler{
		domain.OpCheckCreditLimit:        s.checkCreditLimit,
		domain.OpEvaluateLoanEligibility: s.evaluateLoanEligibility,
		domain.OpGetFxQuote:              s.getFxQuote,
		domain.OpValidateTransaction:     s.validateTransaction,
		domain.OpScoreFraudRisk:          s.scoreFraudRisk,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Operations implements domain.Dispatcher
func (s *Service) Operations() []string { return domain.Names() }

// Dispatch implements domain.Dispatcher
// Input and policy errors pass through; everything else is logged and replaced by a generic error
func (s *Service) Dispatch(ctx context.Context, in domain.Invocation) (res domain.Result, err error) {
	start := s.now()
	if in.CorrelationID == "" {
		in.CorrelationID = s.newID()
	}
	ctx = logger.WithOperation(ctx, in.Operation, in.CorrelationID)
	res.CorrelationID = in.CorrelationID

	defer func() {
		if p := recover(); p != nil {
			err = perr.PanicErrf("panic in %s: %v\n%s", in.Operation, p, debug.Stack())
		}
		s.finish(ctx, in, start, err)
		if err != nil {
			res.Outputs = nil
			err = mask(err)
		}
	}()

	h, ok := s.handlers[in.Operation]
	if !ok {
		return res, perr.WithField(perr.InvalidArgf("Unknown operation '%s'.", in.Operation), "operation")
	}
	out, err := h(ctx, in)
	if err != nil {
		return res, err
	}
	if out == nil {
		out = domain.Outputs{}
	}
	res.Outputs = out
	return res, nil
}

// finish logs the outcome and records the decision
func (s *Service) finish(ctx context.Context, in domain.Invocation, start time.Time, err error) {
	elapsed := s.now().Sub(start)
	outcome := audit.OutcomeOf(err)
	category := ""
	if err != nil {
		category = string(perr.CategoryOf(err))
	}

	log := logger.C(ctx)
	ev := log.Info()
	switch outcome {
	case audit.OutcomeRejected:
		ev = log.Warn().Str("reason", err.Error())
	case audit.OutcomeFailed:
		ev = log.Error().Err(err).Str("category", category)
	}
	ev.Str("record_id", in.RecordID()).
		Str("outcome", string(outcome)).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Msg("operation dispatched")

	s.audit.Record(ctx, audit.Decision{
		At:            start.UTC(),
		Operation:     in.Operation,
		CorrelationID: in.CorrelationID,
		RecordID:      in.RecordID(),
		Outcome:       outcome,
		Category:      category,
		Code:          perr.CodeOf(err),
		ElapsedMS:     uint32(max(elapsed.Milliseconds(), 0)),
	})
}

// mask keeps verbatim categories and collapses the rest to the generic message
func mask(err error) error {
	if perr.Verbatim(err) {
		return err
	}
	switch perr.CategoryOf(err) {
	case perr.CategoryTransientFailure:
		return perr.New(perr.ErrorCodeUnavailable, domain.GenericFailure)
	case perr.CategoryPermanentFailure:
		return perr.New(perr.ErrorCodeUpstream, domain.GenericFailure)
	default:
		return perr.New(perr.ErrorCodeUnknown, domain.GenericFailure)
	}
}

func (s *Service) checkCreditLimit(ctx context.Context, in domain.Invocation) (domain.Outputs, error) {
	id, err := customerID(in.Inputs, domain.InCustomerID)
	if err != nil {
		return nil, err
	}
	requested, err := amount(in.Inputs, domain.InRequestedAmount, true)
	if err != nil {
		return nil, err
	}
	r, err := s.engine.CheckCreditLimit(ctx, id, requested)
	if err != nil {
		return nil, err
	}
	return domain.Outputs{
		domain.OutIsWithinLimit:  r.IsWithinLimit,
		domain.OutAvailableLimit: r.AvailableLimit,
	}, nil
}

func (s *Service) evaluateLoanEligibility(ctx context.Context, in domain.Invocation) (domain.Outputs, error) {
	id, err := customerID(in.Inputs, domain.InCustomerID)
	if err != nil {
		return nil, err
	}
	requested, err := amount(in.Inputs, domain.InRequestedAmount, false)
	if err != nil {
		return nil, err
	}
	product, err := optionalString(in.Inputs, domain.InProductCode)
	if err != nil {
		return nil, err
	}
	r, err := s.engine.EvaluateLoanEligibility(ctx, rules.LoanRequest{
		CustomerID:      id,
		ProductCode:     product,
		RequestedAmount: requested,
	})
	if err != nil {
		return nil, err
	}
	return domain.Outputs{
		domain.OutEligible: r.Eligible,
		domain.OutReasons:  r.ReasonText(),
	}, nil
}

func (s *Service) getFxQuote(ctx context.Context, in domain.Invocation) (domain.Outputs, error) {
	base, err := optionalString(in.Inputs, domain.InBase)
	if err != nil {
		return nil, err
	}
	counter, err := optionalString(in.Inputs, domain.InCounter)
	if err != nil {
		return nil, err
	}
	q, err := s.engine.QuoteFx(ctx, base, counter, s.profile.Static(domain.OpGetFxQuote))
	if err != nil {
		return nil, err
	}
	return domain.Outputs{domain.OutRate: q.Rate}, nil
}

func (s *Service) validateTransaction(ctx context.Context, in domain.Invocation) (domain.Outputs, error) {
	t, err := s.trigger(in)
	if err != nil {
		return nil, err
	}
	return domain.Outputs{}, s.engine.ValidateTransaction(ctx, t)
}

func (s *Service) scoreFraudRisk(ctx context.Context, in domain.Invocation) (domain.Outputs, error) {
	t, err := s.trigger(in)
	if err != nil {
		return nil, err
	}
	return domain.Outputs{}, s.engine.ScoreFraudRisk(ctx, t)
}

func (s *Service) trigger(in domain.Invocation) (rules.Trigger, error) {
	if in.Target == nil {
		return rules.Trigger{}, invalid("target", "%s requires a target record.", in.Operation)
	}
	if in.Target.ID == "" {
		return rules.Trigger{}, invalid("target", "%s target record has no id.", in.Operation)
	}
	return rules.Trigger{
		Message:       in.Message,
		Stage:         in.Stage,
		Depth:         in.Depth,
		CorrelationID: in.CorrelationID,
		Target:        in.Target,
		PreImage:      in.PreImage,
		Static:        s.profile.Static(in.Operation),
	}, nil
}

