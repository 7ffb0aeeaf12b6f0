package connector

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by a connector after Close.
var ErrClosed = errors.New("connector is closed")

// Error wraps a failure reported by an engine driver. The driver's message is
// kept verbatim at the end of Error().
type Error struct {
	// Op is the connector operation: "query", "exec" or "prepare".
	Op string

	// Engine is the dialect name of the connector.
	Engine string

	// Statement is the text that was sent.
	Statement string

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Engine, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as an *Error unless it is nil or already one.
func Wrap(engine, op, statement string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Op: op, Engine: engine, Statement: statement, Err: err}
}

// StatementOf returns the statement text carried by err, if any.
func StatementOf(err error) (string, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Statement, true
	}
	return "", false
}
