package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Aleph-Alpha/orm/v1/connector"
)

// Common database error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying driver-specific error details.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrUndefinedTable is returned when a statement references a missing table or view
	ErrUndefinedTable = errors.New("undefined table")

	// ErrSyntax is returned when the server rejects the statement text
	ErrSyntax = errors.New("syntax error")

	// ErrSerialization is returned when a transaction could not be serialized
	ErrSerialization = errors.New("serialization failure")

	// ErrDeadlock is returned when the server aborted a statement to break a deadlock
	ErrDeadlock = errors.New("deadlock detected")

	// ErrConnection is returned when the connection to the server failed
	ErrConnection = errors.New("connection failure")
)

// SQLSTATE codes used for classification.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeUndefinedTable       = "42P01"
	codeSyntaxError          = "42601"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	classConnection          = "08"
)

// ErrorCategory groups errors by how a caller should react.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryNotFound
	CategoryConstraint
	CategoryStatement
	CategoryConcurrency
	CategoryConnection
)

// TranslateError maps driver errors onto the package sentinels. The result
// wraps both the sentinel and the original error, so the server's message is
// kept and errors.As still reaches *pgconn.PgError. Unrecognized errors are
// returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	sentinel := classify(err)
	if sentinel == nil {
		return err
	}
	return &translated{sentinel: sentinel, err: err}
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return ErrDuplicateKey
		case pgErr.Code == codeForeignKeyViolation:
			return ErrForeignKey
		case pgErr.Code == codeUndefinedTable:
			return ErrUndefinedTable
		case pgErr.Code == codeSyntaxError:
			return ErrSyntax
		case pgErr.Code == codeSerializationFailure:
			return ErrSerialization
		case pgErr.Code == codeDeadlockDetected:
			return ErrDeadlock
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == classConnection:
			return ErrConnection
		}
	}

	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, connector.ErrClosed):
		return ErrConnection
	}
	return nil
}

type translated struct {
	sentinel error
	err      error
}

func (t *translated) Error() string   { return t.err.Error() }
func (t *translated) Unwrap() []error { return []error{t.sentinel, t.err} }

// GetErrorCategory returns the category of err.
func GetErrorCategory(err error) ErrorCategory {
	switch classify(err) {
	case ErrRecordNotFound, ErrUndefinedTable:
		return CategoryNotFound
	case ErrDuplicateKey, ErrForeignKey:
		return CategoryConstraint
	case ErrSyntax:
		return CategoryStatement
	case ErrSerialization, ErrDeadlock:
		return CategoryConcurrency
	case ErrConnection:
		return CategoryConnection
	default:
		return CategoryUnknown
	}
}

// IsRetryable reports whether repeating the failed statement may succeed.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch GetErrorCategory(err) {
	case CategoryConcurrency, CategoryConnection:
		return true
	default:
		return false
	}
}
