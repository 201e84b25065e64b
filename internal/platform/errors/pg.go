package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the repos can hit
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
	sqlStateTruncation          = "22001"
	sqlStateBadTextRep          = "22P02"
	sqlStateReadOnly            = "25006"
	sqlStateCannotConnectNow    = "57P03"
	sqlStateTooManyConnections  = "53300"
)

// DBErrorCode maps a Postgres error to an ErrorCode
// ok is false when err carries no *pgconn.PgError
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case sqlStateUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case sqlStateForeignKeyViolation, sqlStateTruncation, sqlStateBadTextRep:
		return ErrorCodeInvalidArgument, true
	case sqlStateNotNullViolation, sqlStateCheckViolation:
		return ErrorCodeValidation, true
	case sqlStateReadOnly, sqlStateCannotConnectNow, sqlStateTooManyConnections:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgresf wraps a store error with the code DBErrorCode derives, ErrorCodeDB otherwise
// nil stays nil
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, fmt.Sprintf(format, a...))
}
