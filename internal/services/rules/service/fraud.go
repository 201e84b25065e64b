package service

import (
	"context"
	"encoding/json"
	"strings"

	"bankingops/internal/adapters/fraudscore"
	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/logger"
	idem "bankingops/internal/services/idempotency/domain"
	"bankingops/internal/services/rules/domain"

	"github.com/shopspring/decimal"
)

// ScoreFraudRisk implements domain.Engine
// the mark is written only after the score update succeeds
func (s *Service) ScoreFraudRisk(ctx context.Context, in domain.Trigger) error {
	if in.Target == nil || in.Target.Entity != domain.TransactionEntity {
		return nil
	}
	log := logger.C(ctx)
	if in.Depth > 1 {
		log.Debug().Int("depth", in.Depth).Msg("skipping fraud scoring for nested invocation")
		return nil
	}

	key := idem.NewKey(idem.KindFraudScore, in.Target.ID, in.Message, in.Stage)
	done, err := s.guard.WasProcessed(ctx, key)
	if err != nil {
		return err
	}
	if done {
		log.Debug().Str("key", string(key)).Msg("skipping duplicate fraud scoring")
		return nil
	}

	view := in.View()
	amount, _, err := view.Decimal(domain.TransactionAmount)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("Transaction amount is not a number."), domain.TransactionAmount)
	}
	currency, _, err := view.String(domain.TransactionCurrency)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("Transaction currency must be text."), domain.TransactionCurrency)
	}
	if strings.TrimSpace(currency) == "" {
		currency = "USD"
	}
	customer, _, err := view.Ref(domain.TransactionCustomer)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("Transaction customer must be a record reference."), domain.TransactionCustomer)
	}

	url := strings.TrimSpace(s.settings.Resolve(ctx, domain.SettingFraudAPIURL, in.Static))
	if url == "" {
		log.Info().Msg("fraud API URL not configured, skipping enrichment")
		return nil
	}
	if s.fraud == nil {
		return perr.Internalf("fraud scoring client is not wired")
	}

	score, err := s.fraud.Score(ctx, fraudscore.Request{
		URL:           url,
		Credential:    s.settings.Resolve(ctx, domain.SettingFraudAPIKey, ""),
		CorrelationID: in.CorrelationID,
		Amount:        amount,
		Currency:      currency,
		CustomerID:    customer.ID,
	})
	if err != nil {
		return err
	}

	risky := score.GreaterThanOrEqual(domain.FraudRiskThreshold)
	if err := s.records.Update(ctx, domain.TransactionEntity, in.Target.ID, map[string]any{
		domain.TransactionFraudScore: jsonNumber(score),
		domain.TransactionIsFraud:    risky,
	}); err != nil {
		return err
	}

	if err := s.guard.MarkProcessed(ctx, key, s.expiry()); err != nil {
		return err
	}
	log.Info().Str("score", score.String()).Bool("risk", risky).Msg("fraud score updated")
	return nil
}

// jsonNumber keeps the score numeric when the record is encoded
func jsonNumber(d decimal.Decimal) json.Number { return json.Number(d.String()) }
