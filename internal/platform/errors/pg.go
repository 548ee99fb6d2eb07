package errors

// Postgres and context helpers for mapping storage failures to project ErrorCode

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes a read-only query path can realistically hit
const (
	pgErrInvalidTextRepresentation = "22P02"
	pgErrNumericValueOutOfRange    = "22003"
	pgErrUndefinedTable            = "42P01"
	pgErrUndefinedColumn           = "42703"
	pgErrSerializationFailure      = "40001"
	pgErrQueryCanceled             = "57014"
	pgErrAdminShutdown             = "57P01"
	pgErrCannotConnectNow          = "57P03"
	pgErrTooManyConnections        = "53300"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// StorageCode classifies any storage failure
// context errors win over driver errors since pgx wraps them
func StorageCode(err error) ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return ErrorCodeCanceled
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
			return ErrorCodeUnavailable
		}
		return ErrorCodeDB
	}
	switch pgErr.Code {
	case pgErrInvalidTextRepresentation, pgErrNumericValueOutOfRange:
		return ErrorCodeInvalidArgument
	case pgErrQueryCanceled:
		return ErrorCodeCanceled
	case pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections:
		return ErrorCodeUnavailable
	case pgErrUndefinedTable, pgErrUndefinedColumn:
		return ErrorCodeDB
	}
	return ErrorCodeDB
}

// FromStorage wraps a storage error with a mapped ErrorCode and message
// If err is nil, returns nil
func FromStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, StorageCode(err), msg)
}

// IsRetryable reports whether a storage error is a transient condition
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	// local cancellations are the caller's decision
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	root := Root(err)

	var pgErr *pgconn.PgError
	if stderrs.As(root, &pgErr) {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrCannotConnectNow, pgErrTooManyConnections, pgErrAdminShutdown:
			return true
		default:
			return false
		}
	}

	s := strings.ToLower(root.Error())
	switch {
	case strings.Contains(s, "could not serialize access"),
		strings.Contains(s, "canceling statement due to statement timeout"),
		strings.Contains(s, "connection reset by peer"),
		strings.Contains(s, "terminating connection due to administrator command"):
		return true
	default:
		return false
	}
}
