// Package errors is the coded error type every layer returns
// Import it as perr so it never shadows the standard library
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable machine-readable failure code; values are written to the decision log
type ErrorCode string

const (
	ErrorCodeUnknown         ErrorCode = "unknown"
	ErrorCodePanic           ErrorCode = "panic"
	ErrorCodeDB              ErrorCode = "db"
	ErrorCodeNotFound        ErrorCode = "not_found"
	ErrorCodeDuplicateKey    ErrorCode = "duplicate_key"
	ErrorCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrorCodeValidation      ErrorCode = "validation"
	ErrorCodeJSON            ErrorCode = "json"

	// ErrorCodePolicyViolation messages explain the rule that refused the operation
	ErrorCodePolicyViolation ErrorCode = "policy_violation"

	// ErrorCodeUnavailable is a dependency failure a later retry may clear
	ErrorCodeUnavailable ErrorCode = "unavailable"

	// ErrorCodeUpstream is a dependency refusing the call outright, e.g. a 4xx
	ErrorCodeUpstream ErrorCode = "upstream"
)

var httpStatus = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodePolicyViolation: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeUpstream:        http.StatusBadGateway,
}

// HTTPStatus maps the code to a response status, 500 when unmapped
func (c ErrorCode) HTTPStatus() int {
	if s, ok := httpStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by single-row reads that match nothing
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a caller-facing message, an optional field and the wrapped cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Message is the text without the wrapped cause
func (e *Error) Message() string { return e.msg }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// Wire is the error shape serialized to API and CLI callers
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom renders any error; foreign errors become unknown with their own text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// Root returns the innermost cause
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// CodeOf returns err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return CodeOf(err).HTTPStatus() }

// WithField returns a copy of err naming the offending input; foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// New returns an error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches code and msg to cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a format
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error  { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
func Policyf(format string, a ...any) error      { return Newf(ErrorCodePolicyViolation, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
func Upstreamf(format string, a ...any) error    { return Newf(ErrorCodeUpstream, format, a...) }
func Internalf(format string, a ...any) error    { return Newf(ErrorCodeUnknown, format, a...) }

// Category is the caller-facing failure class of an operation error
type Category string

const (
	CategoryInvalidInput     Category = "InvalidInput"
	CategoryPolicyViolation  Category = "PolicyViolation"
	CategoryTransientFailure Category = "TransientFailure"
	CategoryPermanentFailure Category = "PermanentFailure"
	CategoryInternalError    Category = "InternalError"
)

// CategoryOf folds an error code into its caller-facing category
func CategoryOf(err error) Category {
	switch CodeOf(err) {
	case ErrorCodeInvalidArgument, ErrorCodeValidation, ErrorCodeJSON:
		return CategoryInvalidInput
	case ErrorCodePolicyViolation:
		return CategoryPolicyViolation
	case ErrorCodeUnavailable:
		return CategoryTransientFailure
	case ErrorCodeUpstream:
		return CategoryPermanentFailure
	default:
		return CategoryInternalError
	}
}

// Verbatim reports whether the error message may be shown to a caller unchanged
func Verbatim(err error) bool {
	switch CategoryOf(err) {
	case CategoryInvalidInput, CategoryPolicyViolation:
		return true
	default:
		return false
	}
}
