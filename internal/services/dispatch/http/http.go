// Package http provides http transport for the operation dispatcher
package http

import (
	stdhttp "net/http"

	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/services/dispatch/domain"
	records "bankingops/internal/services/records/domain"
)

// Register mounts the operation endpoints on the given router
func Register(r httpkit.Router, d domain.Dispatcher) {
	h := &handlers{d: d}

	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[InvokeRequest](r, "/{operation}", h.invoke)
}

// RecordPayload is a record image carried by an invocation
type RecordPayload struct {
	Entity string         `json:"entity" validate:"required,max=64" example:"bkg_transaction"`
	ID     string         `json:"id"     validate:"required,uuid"   example:"0d6c3b8e-2f7a-4e55-8c3e-6b1d2a9f4c10"`
	Fields map[string]any `json:"fields"`
}

func (p *RecordPayload) record() *records.Record {
	if p == nil {
		return nil
	}
	fields := p.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return &records.Record{Entity: p.Entity, ID: p.ID, Fields: fields}
}

// InvokeRequest is the body of an operation call
type InvokeRequest struct {
	Message       string         `json:"message"        validate:"omitempty,max=64"  example:"Update"`
	Stage         int            `json:"stage"          validate:"gte=0"             example:"40"`
	Depth         int            `json:"depth"          validate:"gte=0"             example:"1"`
	CorrelationID string         `json:"correlation_id" validate:"omitempty,max=128" example:"3f0e9a52-5a1c-4d0e-9f7b-1c2d3e4f5a6b"`
	Inputs        map[string]any `json:"inputs"`
	Target        *RecordPayload `json:"target,omitempty"`
	PreImage      *RecordPayload `json:"pre_image,omitempty"`
}

// Invocation converts the request for operation op
func (in InvokeRequest) Invocation(op string) domain.Invocation {
	return domain.Invocation{
		Operation:     op,
		Message:       in.Message,
		Stage:         in.Stage,
		Depth:         in.Depth,
		CorrelationID: in.CorrelationID,
		Inputs:        in.Inputs,
		Target:        in.Target.record(),
		PreImage:      in.PreImage.record(),
	}
}

// OperationsResponse lists the operation names
type OperationsResponse struct {
	Operations []string `json:"operations"`
}

type handlers struct{ d domain.Dispatcher }

// swagger:route GET /operations Operations listOperations
// @Summary List dispatchable operations
// @Tags Operations
// @Produce json
// @Success 200 {object} OperationsResponse "ok"
// @Router /operations [get]
func (h *handlers) list(_ *stdhttp.Request) (any, error) {
	return OperationsResponse{Operations: h.d.Operations()}, nil
}

// swagger:route POST /operations/{operation} Operations invokeOperation
// @Summary Invoke an operation
// @Description Input and policy failures return their message; other failures return a generic message
// @Tags Operations
// @Accept json
// @Produce json
// @Param operation path string true "Operation name" Enums(CheckCreditLimit, EvaluateLoanEligibility, GetFxQuote, ScoreFraudRisk, ValidateTransaction)
// @Param payload body InvokeRequest true "Invocation"
// @Success 200 {object} domain.Result "ok"
// @Failure 422 {object} errors.Wire "invalid input or policy violation"
// @Failure 502 {object} errors.Wire "dependency rejected the call"
// @Failure 503 {object} errors.Wire "dependency unavailable"
// @Router /operations/{operation} [post]
func (h *handlers) invoke(r *stdhttp.Request, in InvokeRequest) (any, error) {
	if in.CorrelationID == "" {
		in.CorrelationID = httpkit.CorrelationID(r)
	}
	return h.d.Dispatch(r.Context(), in.Invocation(httpkit.PathParam(r, "operation")))
}
