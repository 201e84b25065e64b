// Package domain defines the record store collaborator and typed views over record fields
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Ref points at another record, e.g. a transaction's customer
type Ref struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

// Record is a named-field view of an external entity row
type Record struct {
	Entity string         `json:"entity" validate:"required"`
	ID     string         `json:"id" validate:"omitempty,uuid"`
	Fields map[string]any `json:"fields"`
}

// Get returns the raw field value; absent and null are both reported as !ok
func (r *Record) Get(field string) (any, bool) {
	if r == nil || r.Fields == nil {
		return nil, false
	}
	v, ok := r.Fields[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Decimal reads a numeric or money field
func (r *Record) Decimal(field string) (decimal.Decimal, bool, error) {
	return View{Current: r}.Decimal(field)
}

// String reads a text field
func (r *Record) String(field string) (string, bool, error) {
	return View{Current: r}.String(field)
}

// Int reads an integer or option-set field
func (r *Record) Int(field string) (int64, bool, error) {
	return View{Current: r}.Int(field)
}

// Ref reads a lookup field
func (r *Record) Ref(field string) (Ref, bool, error) {
	return View{Current: r}.Ref(field)
}

// FirstOf reads field from primary, falling back to fallback when primary lacks it
func FirstOf(primary, fallback *Record, field string) (any, bool) {
	if v, ok := primary.Get(field); ok {
		return v, true
	}
	return fallback.Get(field)
}

// View pairs the record as submitted with its pre-image
type View struct {
	Current *Record
	Prior   *Record
}

// Field returns the value preferring Current, then Prior
func (v View) Field(name string) (any, bool) { return FirstOf(v.Current, v.Prior, name) }

// Decimal reads a numeric field through the view
func (v View) Decimal(name string) (decimal.Decimal, bool, error) {
	raw, ok := v.Field(name)
	if !ok {
		return decimal.Zero, false, nil
	}
	d, err := AsDecimal(raw)
	if err != nil {
		return decimal.Zero, true, fmt.Errorf("%s: %w", name, err)
	}
	return d, true, nil
}

// String reads a text field through the view
func (v View) String(name string) (string, bool, error) {
	raw, ok := v.Field(name)
	if !ok {
		return "", false, nil
	}
	s, err := AsString(raw)
	if err != nil {
		return "", true, fmt.Errorf("%s: %w", name, err)
	}
	return s, true, nil
}

// Int reads an integer field through the view
func (v View) Int(name string) (int64, bool, error) {
	raw, ok := v.Field(name)
	if !ok {
		return 0, false, nil
	}
	n, err := AsInt(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", name, err)
	}
	return n, true, nil
}

// Ref reads a lookup field through the view
func (v View) Ref(name string) (Ref, bool, error) {
	raw, ok := v.Field(name)
	if !ok {
		return Ref{}, false, nil
	}
	ref, err := AsRef(raw)
	if err != nil {
		return Ref{}, true, fmt.Errorf("%s: %w", name, err)
	}
	return ref, true, nil
}

// AsDecimal converts JSON-decoded numbers, numeric strings and money objects
// ({"value": n} or {"amount": n}) into a decimal without float rounding
func AsDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a decimal: %q", x)
		}
		return d, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, fmt.Errorf("not a finite number")
		}
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case map[string]any:
		for _, k := range []string{"value", "amount"} {
			if inner, ok := x[k]; ok && inner != nil {
				return AsDecimal(inner)
			}
		}
		return decimal.Zero, fmt.Errorf("money object has no value")
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// AsString accepts only JSON strings
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

// AsInt converts integral numbers and option-set objects ({"value": n})
func AsInt(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Int64()
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("expected integer, got %v", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case map[string]any:
		if inner, ok := x["value"]; ok && inner != nil {
			return AsInt(inner)
		}
		return 0, fmt.Errorf("option object has no value")
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}

// AsRef accepts Ref values and {"entity": "...", "id": "..."} objects
func AsRef(v any) (Ref, error) {
	switch x := v.(type) {
	case Ref:
		return x, nil
	case *Ref:
		if x == nil {
			return Ref{}, fmt.Errorf("nil reference")
		}
		return *x, nil
	case map[string]any:
		id, _ := x["id"].(string)
		entity, _ := x["entity"].(string)
		if strings.TrimSpace(id) == "" {
			return Ref{}, fmt.Errorf("reference has no id")
		}
		return Ref{Entity: entity, ID: id}, nil
	default:
		return Ref{}, fmt.Errorf("expected reference object, got %T", v)
	}
}
