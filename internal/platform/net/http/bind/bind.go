// Package bind decodes JSON bodies and validates them against struct tags
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "bankingops/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a request body
const DefaultMaxBytes = 1 << 20

// Options tune Decode
type Options struct {
	// AllowUnknown accepts fields T does not declare
	AllowUnknown bool
	// AllowEmpty turns an empty input into the zero T instead of an error
	AllowEmpty bool
}

type validation struct {
	v  *validator.Validate
	tr ut.Translator
}

var validate = sync.OnceValue(func() validation {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, tr)

	// bounds read the same for strings and numbers
	for tag, text := range map[string]string{
		"min": "{0} must be at least {1}",
		"max": "{0} must be at most {1}",
	} {
		tag, text := tag, text // per-iteration copies; go.mod targets go1.21 loop semantics
		_ = v.RegisterTranslation(tag, tr,
			func(u ut.Translator) error { return u.Add(tag, text, true) },
			func(u ut.Translator, fe validator.FieldError) string {
				msg, _ := u.T(tag, fe.Field(), fe.Param())
				return msg
			})
	}
	return validation{v: v, tr: tr}
})

// Decode reads exactly one JSON value into T, keeping numbers as json.Number, then validates structs
func Decode[T any](r io.Reader, o Options) (T, error) {
	var dst T
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF) && o.AllowEmpty:
			return dst, nil
		case errors.Is(err, io.EOF):
			return dst, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return dst, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return dst, perr.JSONErrf("unexpected data after the JSON value")
	}

	if reflect.ValueOf(dst).Kind() == reflect.Struct {
		if err := Validate(dst); err != nil {
			var zero T
			return zero, err
		}
	}
	return dst, nil
}

// ParseJSON binds a request body; bodiless GET and DELETE requests yield the zero T
func ParseJSON[T any](r *http.Request) (T, error) {
	body := http.MaxBytesReader(nil, r.Body, DefaultMaxBytes)
	allowEmpty := r.Method == http.MethodGet || r.Method == http.MethodDelete
	return Decode[T](body, Options{AllowEmpty: allowEmpty})
}

// Validate checks v's struct tags and reports the first failure under its json field name
func Validate(v any) error {
	err := validate().v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validator misuse")
	}
	fe := verrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(validate().tr)), fe.Field())
}
