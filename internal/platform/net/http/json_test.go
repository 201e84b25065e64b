package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type amountIn struct {
	Amount int `json:"amount" validate:"gte=0"`
}

func TestHandlers(t *testing.T) {
	halve := JSONHandler(func(_ *http.Request, in amountIn) (any, error) {
		if in.Amount == 13 {
			return nil, errors.New("unlucky")
		}
		if in.Amount == 0 {
			return Response{Status: http.StatusAccepted, Body: "queued"}, nil
		}
		return map[string]int{"half": in.Amount / 2}, nil
	})
	list := CallHandler(func(*http.Request) (any, error) { return []string{"GetFxQuote"}, nil })

	cases := []struct {
		name   string
		h      Handler
		method string
		body   string
		status int
		want   string
	}{
		{"bound", halve, http.MethodPost, `{"amount":50}`, http.StatusOK, `"data":{"half":25}`},
		{"malformed body", halve, http.MethodPost, `{"amount":`, http.StatusBadRequest, `"code":"json"`},
		{"fails validation", halve, http.MethodPost, `{"amount":-1}`, http.StatusBadRequest, `"field":"amount"`},
		{"handler error", halve, http.MethodPost, `{"amount":13}`, http.StatusInternalServerError, `"error":"unlucky"`},
		{"response passes through", halve, http.MethodPost, `{"amount":0}`, http.StatusAccepted, `"data":"queued"`},
		{"no body", list, http.MethodGet, ``, http.StatusOK, `"data":["GetFxQuote"]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.h(rec, httptest.NewRequest(c.method, "/operations", strings.NewReader(c.body)))
			if rec.Code != c.status || !strings.Contains(rec.Body.String(), c.want) {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
			}
		})
	}
}
