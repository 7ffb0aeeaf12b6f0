package mariadb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Aleph-Alpha/orm/v1/connector"
)

// Common database error types that can be used by consumers of this package.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrUndefinedTable is returned when a statement references a missing table
	ErrUndefinedTable = errors.New("undefined table")

	// ErrSyntax is returned when the server rejects the statement text
	ErrSyntax = errors.New("syntax error")

	// ErrDeadlock is returned when the server rolled back a statement to break a deadlock
	ErrDeadlock = errors.New("deadlock detected")

	// ErrLockTimeout is returned when a row lock could not be acquired in time
	ErrLockTimeout = errors.New("lock wait timeout")

	// ErrConnection is returned when the connection to the server failed
	ErrConnection = errors.New("connection failure")
)

// Server error numbers used for classification.
const (
	errDupEntry          = 1062
	errRowIsReferenced   = 1451
	errNoReferencedRow   = 1452
	errNoSuchTable       = 1146
	errParseError        = 1064
	errLockDeadlock      = 1213
	errLockWaitTimeout   = 1205
	errServerGone        = 2006
	errServerLost        = 2013
	errTooManyConnection = 1040
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

// TranslateError maps driver errors onto the package sentinels while keeping
// the server message and the *mysql.MySQLError reachable through errors.As.
// Unrecognized errors are returned unchanged.
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
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDupEntry:
			return ErrDuplicateKey
		case errRowIsReferenced, errNoReferencedRow:
			return ErrForeignKey
		case errNoSuchTable:
			return ErrUndefinedTable
		case errParseError:
			return ErrSyntax
		case errLockDeadlock:
			return ErrDeadlock
		case errLockWaitTimeout:
			return ErrLockTimeout
		case errServerGone, errServerLost, errTooManyConnection:
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
	case errors.Is(err, mysql.ErrInvalidConn), errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone), errors.Is(err, connector.ErrClosed):
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
	case ErrDeadlock, ErrLockTimeout:
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
