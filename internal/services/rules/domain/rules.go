package domain

import (
	"context"
	"strings"

	records "bankingops/internal/services/records/domain"

	"github.com/shopspring/decimal"
)

// Policy defaults used when no setting parses
var (
	DefaultMinCreditScore  = 650
	DefaultMaxDebtToIncome = decimal.RequireFromString("0.45")
	FraudRiskThreshold     = decimal.RequireFromString("0.8")
	SamePairRate           = decimal.NewFromInt(1)
	HeuristicPairRate      = decimal.RequireFromString("0.9")
)

// Messages surfaced to callers
const (
	MsgAmountNotPositive = "Transaction amount must be greater than zero."
	MsgCurrencyFormat    = "Currency '%s' is not allowed."
	MsgKycNotPassed      = "Customer KYC is not in a PASSED state."
	MsgScoreFormat       = "Credit score %d below minimum %d."
	MsgDtiFormat         = "DTI %s%% exceeds %s%%."
	ReasonSeparator      = "; "
)

// Trigger is a record mutation handed to a record-triggered rule
type Trigger struct {
	Message       string
	Stage         int
	Depth         int
	CorrelationID string
	Target        *records.Record
	PreImage      *records.Record

	// Static is the registration's static configuration for this step
	Static string
}

// View reads fields preferring Target, then PreImage
func (t Trigger) View() records.View {
	return records.View{Current: t.Target, Prior: t.PreImage}
}

// CreditLimit is the CheckCreditLimit result
type CreditLimit struct {
	IsWithinLimit  bool            `json:"is_within_limit"`
	AvailableLimit decimal.Decimal `json:"available_limit"`
}

// LoanRequest is the EvaluateLoanEligibility input
type LoanRequest struct {
	CustomerID      string
	ProductCode     string
	RequestedAmount decimal.Decimal
}

// Eligibility is the EvaluateLoanEligibility result
type Eligibility struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// ReasonText joins the reasons the way callers display them
func (e Eligibility) ReasonText() string { return strings.Join(e.Reasons, ReasonSeparator) }

// FxQuote is the GetFxQuote result
type FxQuote struct {
	Base    string          `json:"base"`
	Counter string          `json:"counter"`
	Rate    decimal.Decimal `json:"rate"`
}

// Engine is the rule surface the dispatcher calls
type Engine interface {
	ValidateTransaction(ctx context.Context, in Trigger) error
	ScoreFraudRisk(ctx context.Context, in Trigger) error
	CheckCreditLimit(ctx context.Context, customerID string, requested decimal.Decimal) (CreditLimit, error)
	EvaluateLoanEligibility(ctx context.Context, in LoanRequest) (Eligibility, error)
	QuoteFx(ctx context.Context, base, counter, static string) (FxQuote, error)
}
