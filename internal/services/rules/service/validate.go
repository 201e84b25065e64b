package service

import (
	"context"
	"strings"

	"bankingops/internal/platform/config"
	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/logger"
	idem "bankingops/internal/services/idempotency/domain"
	"bankingops/internal/services/rules/domain"

	"golang.org/x/text/cases"
)

// ValidateTransaction implements domain.Engine
// rejections are returned without marking so a corrected redelivery is evaluated again
func (s *Service) ValidateTransaction(ctx context.Context, in domain.Trigger) error {
	if in.Target == nil || in.Target.Entity != domain.TransactionEntity {
		return nil
	}
	log := logger.C(ctx)

	key := idem.NewKey(idem.KindValidate, in.Target.ID, in.Message, in.Stage)
	done, err := s.guard.WasProcessed(ctx, key)
	if err != nil {
		return err
	}
	if done {
		log.Debug().Str("key", string(key)).Msg("skipping duplicate validation")
		return nil
	}

	view := in.View()
	amount, _, err := view.Decimal(domain.TransactionAmount)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("Transaction amount is not a number."), domain.TransactionAmount)
	}
	if !amount.IsPositive() {
		return perr.WithField(perr.InvalidArgf(domain.MsgAmountNotPositive), domain.TransactionAmount)
	}

	currency, _, err := view.String(domain.TransactionCurrency)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("Transaction currency must be text."), domain.TransactionCurrency)
	}
	allowed := s.allowedCurrencies(ctx, in.Static)
	if _, ok := allowed[fold(currency)]; !ok {
		return perr.Policyf(domain.MsgCurrencyFormat, currency)
	}

	ref, hasCustomer, err := view.Ref(domain.TransactionCustomer)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("Transaction customer must be a record reference."), domain.TransactionCustomer)
	}
	if hasCustomer {
		cust, err := s.customer(ctx, ref.Entity, ref.ID, domain.CustomerKyc)
		if err != nil {
			return err
		}
		kyc, ok, err := cust.Int(domain.CustomerKyc)
		if err != nil || !ok || kyc != domain.KycPassed {
			return perr.Policyf(domain.MsgKycNotPassed)
		}
	}

	log.Info().
		Str("amount", amount.String()).
		Str("currency", currency).
		Str("customer", ref.ID).
		Msg("transaction validation passed")
	return s.guard.MarkProcessed(ctx, key, s.expiry())
}

// allowedCurrencies merges the defaults with the configured list, folded for comparison
func (s *Service) allowedCurrencies(ctx context.Context, static string) map[string]struct{} {
	raw := s.settings.Resolve(ctx, domain.SettingAllowedCurrencies, static)
	list := append(append([]string(nil), domain.DefaultCurrencies...), config.SplitList(raw, domain.CurrencyDelimiters)...)
	out := make(map[string]struct{}, len(list))
	for _, c := range list {
		out[fold(c)] = struct{}{}
	}
	return out
}

func fold(s string) string { return cases.Fold().String(strings.TrimSpace(s)) }
