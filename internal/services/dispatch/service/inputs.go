package service

import (
	"encoding/json"
	"strings"

	perr "bankingops/internal/platform/errors"
	records "bankingops/internal/services/records/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func invalid(field, format string, a ...any) error {
	return perr.WithField(perr.InvalidArgf(format, a...), field)
}

func present(inputs map[string]any, name string) (any, bool) {
	v, ok := inputs[name]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

// customerID requires a UUID string and returns it in canonical form
func customerID(inputs map[string]any, name string) (string, error) {
	v, ok := present(inputs, name)
	if !ok {
		return "", invalid(name, "%s is required.", name)
	}
	s, isStr := v.(string)
	if !isStr {
		return "", invalid(name, "%s must be a string.", name)
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", invalid(name, "%s must be a UUID.", name)
	}
	return id.String(), nil
}

// amount reads a JSON number or numeric string; absent optional amounts are zero
func amount(inputs map[string]any, name string, required bool) (decimal.Decimal, error) {
	v, ok := present(inputs, name)
	if !ok {
		if required {
			return decimal.Zero, invalid(name, "%s is required.", name)
		}
		return decimal.Zero, nil
	}
	switch v.(type) {
	case json.Number, string, float64, int, int64, decimal.Decimal:
	default:
		return decimal.Zero, invalid(name, "%s must be a number.", name)
	}
	d, err := records.AsDecimal(v)
	if err != nil {
		return decimal.Zero, invalid(name, "%s must be a number.", name)
	}
	return d, nil
}

// optionalString reads a string input, "" when absent
func optionalString(inputs map[string]any, name string) (string, error) {
	v, ok := present(inputs, name)
	if !ok {
		return "", nil
	}
	s, isStr := v.(string)
	if !isStr {
		return "", invalid(name, "%s must be a string.", name)
	}
	return strings.TrimSpace(s), nil
}
