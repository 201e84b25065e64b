// Package domain defines the operation surface the dispatcher exposes
package domain

import (
	"context"
	"sort"

	records "bankingops/internal/services/records/domain"
)

// Operation names accepted by the dispatcher
const (
	OpCheckCreditLimit        = "CheckCreditLimit"
	OpEvaluateLoanEligibility = "EvaluateLoanEligibility"
	OpGetFxQuote              = "GetFxQuote"
	OpValidateTransaction     = "ValidateTransaction"
	OpScoreFraudRisk          = "ScoreFraudRisk"
)

// Input and output parameter names
const (
	InCustomerID      = "CustomerId"
	InRequestedAmount = "RequestedAmount"
	InProductCode     = "ProductCode"
	InBase            = "Base"
	InCounter         = "Counter"

	OutIsWithinLimit  = "IsWithinLimit"
	OutAvailableLimit = "AvailableLimit"
	OutEligible       = "Eligible"
	OutReasons        = "Reasons"
	OutRate           = "Rate"
)

// GenericFailure replaces every message that is not safe to show a caller
const GenericFailure = "BankingOps operation failed. See operator trace log for details."

// Invocation is one externally delivered operation call
type Invocation struct {
	Operation     string
	Message       string
	Stage         int
	Depth         int
	CorrelationID string
	Inputs        map[string]any
	Target        *records.Record
	PreImage      *records.Record
}

// RecordID returns the target id, empty for direct invocations
func (in Invocation) RecordID() string {
	if in.Target == nil {
		return ""
	}
	return in.Target.ID
}

// Outputs are the named results handed back to the caller
type Outputs map[string]any

// Result pairs outputs with the correlation id the call ran under
type Result struct {
	CorrelationID string  `json:"correlation_id"`
	Outputs       Outputs `json:"outputs"`
}

// Dispatcher runs invocations
type Dispatcher interface {
	Dispatch(ctx context.Context, in Invocation) (Result, error)
	Operations() []string
}

// Names returns the operation names in stable order
func Names() []string {
	out := []string{
		OpCheckCreditLimit,
		OpEvaluateLoanEligibility,
		OpGetFxQuote,
		OpValidateTransaction,
		OpScoreFraudRisk,
	}
	sort.Strings(out)
	return out
}
