package service

import (
	"context"
	"fmt"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/services/rules/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CheckCreditLimit implements domain.Engine
func (s *Service) CheckCreditLimit(ctx context.Context, customerID string, requested decimal.Decimal) (domain.CreditLimit, error) {
	cust, err := s.customer(ctx, domain.CustomerEntity, customerID,
		domain.CustomerCreditLimit, domain.CustomerCurrentExposure)
	if err != nil {
		return domain.CreditLimit{}, err
	}
	limit, err := money(&cust, domain.CustomerCreditLimit)
	if err != nil {
		return domain.CreditLimit{}, err
	}
	exposure, err := money(&cust, domain.CustomerCurrentExposure)
	if err != nil {
		return domain.CreditLimit{}, err
	}

	available := decimal.Max(decimal.Zero, limit.Sub(exposure))
	return domain.CreditLimit{
		IsWithinLimit:  requested.LessThanOrEqual(available),
		AvailableLimit: available,
	}, nil
}

// EvaluateLoanEligibility implements domain.Engine
func (s *Service) EvaluateLoanEligibility(ctx context.Context, in domain.LoanRequest) (domain.Eligibility, error) {
	cust, err := s.customer(ctx, domain.CustomerEntity, in.CustomerID,
		domain.CustomerCreditScore, domain.CustomerMonthlyIncome, domain.CustomerCurrentExposure)
	if err != nil {
		return domain.Eligibility{}, err
	}
	score, _, err := cust.Int(domain.CustomerCreditScore)
	if err != nil {
		return domain.Eligibility{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "customer %s has a malformed credit score", in.CustomerID)
	}
	income, err := money(&cust, domain.CustomerMonthlyIncome)
	if err != nil {
		return domain.Eligibility{}, err
	}
	exposure, err := money(&cust, domain.CustomerCurrentExposure)
	if err != nil {
		return domain.Eligibility{}, err
	}

	minScore, _ := s.settings.ResolveInt(ctx, domain.SettingMinCreditScore, "", domain.DefaultMinCreditScore)
	maxDti, _ := s.settings.ResolveDecimal(ctx, domain.SettingMaxDebtToIncome, "", domain.DefaultMaxDebtToIncome)

	reasons := []string{}
	if score < int64(minScore) {
		reasons = append(reasons, fmt.Sprintf(domain.MsgScoreFormat, score, minScore))
	}
	dti := DebtToIncome(exposure, in.RequestedAmount, income)
	if dti.GreaterThan(maxDti) {
		reasons = append(reasons, fmt.Sprintf(domain.MsgDtiFormat, percent(dti), percent(maxDti)))
	}
	return domain.Eligibility{Eligible: len(reasons) == 0, Reasons: reasons}, nil
}

// DebtToIncome is (exposure+requested)/income, or 1 when there is no income
func DebtToIncome(exposure, requested, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return exposure.Add(requested).Div(income)
}

// percent renders a ratio as a whole percentage, 0.456 -> 46
func percent(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).Round(0).String()
}
