// Package connector defines how the query and schema layers talk to an engine.
//
// A Connector runs statement text with bound arguments and reports either a
// row cursor or an affected-row count. Engines built on database/sql use the
// SQL type; other engines implement the interface directly.
//
// Driver failures come back as *Error. The driver's error is wrapped, not
// replaced, so errors.As against driver error types and the driver's message
// both keep working.
package connector
