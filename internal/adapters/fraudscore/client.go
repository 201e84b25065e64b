// Package fraudscore calls the external fraud scoring API
package fraudscore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/net/retryhttp"

	"github.com/shopspring/decimal"
)

// Sender is the retrying transport the client needs
type Sender interface {
	Send(ctx context.Context, req retryhttp.Request, maxAttempts int) (*retryhttp.Response, error)
}

// Request is one scoring call
type Request struct {
	URL           string
	Credential    string
	CorrelationID string
	Amount        decimal.Decimal
	Currency      string
	CustomerID    string
}

// Client scores transactions
type Client struct {
	http        Sender
	maxAttempts int
}

// New returns a Client; maxAttempts <= 0 uses the sender's default
func New(s Sender, maxAttempts int) *Client {
	return &Client{http: s, maxAttempts: maxAttempts}
}

type payload struct {
	Amount     json.Number `json:"amount"`
	Currency   string      `json:"currency"`
	CustomerID string      `json:"customerId"`
}

type reply struct {
	Score *json.Number `json:"score"`
}

// Score posts the transaction and returns the numeric score from {"score": n}.
// Retry exhaustion surfaces as Unavailable; any other failure is Upstream.
func (c *Client) Score(ctx context.Context, in Request) (decimal.Decimal, error) {
	body, err := json.Marshal(payload{
		Amount:     json.Number(in.Amount.String()),
		Currency:   in.Currency,
		CustomerID: in.CustomerID,
	})
	if err != nil {
		return decimal.Zero, perr.Wrap(err, perr.ErrorCodeUnknown, "encode scoring request")
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Accept", "application/json")
	if in.CorrelationID != "" {
		h.Set("x-correlation-id", in.CorrelationID)
	}
	if strings.TrimSpace(in.Credential) != "" {
		h.Set("Authorization", "Bearer "+strings.TrimSpace(in.Credential))
	}

	resp, err := c.http.Send(ctx, retryhttp.Request{
		Method: http.MethodPost,
		URL:    in.URL,
		Header: h,
		Body:   body,
	}, c.maxAttempts)
	if err != nil {
		return decimal.Zero, err
	}
	if !resp.OK() {
		return decimal.Zero, perr.Upstreamf("fraud scoring failed with status %d", resp.Status)
	}
	return parseScore(resp.Body)
}

func parseScore(body []byte) (decimal.Decimal, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var r reply
	if err := dec.Decode(&r); err != nil {
		return decimal.Zero, perr.Wrap(err, perr.ErrorCodeUpstream, "fraud scoring response is not a JSON object")
	}
	if r.Score == nil {
		return decimal.Zero, perr.Upstreamf("fraud scoring response has no score")
	}
	d, err := decimal.NewFromString(r.Score.String())
	if err != nil {
		return decimal.Zero, perr.Wrap(err, perr.ErrorCodeUpstream, "fraud score is not numeric")
	}
	return d, nil
}
