package command

import (
	"strconv"
	"strings"
)

// Dialect holds the parts of statement text that differ between engines.
type Dialect struct {
	// Name identifies the engine family, e.g. "postgres".
	Name string

	// Quote wraps an identifier.
	Quote func(identifier string) string

	// Placeholder returns the bind marker for the n-th argument, 1-based.
	Placeholder func(n int) string
}

var (
	// Postgres quotes with double quotes and numbers placeholders ($1, $2, ...).
	Postgres = Dialect{Name: "postgres", Quote: doubleQuote, Placeholder: dollar}

	// MySQL quotes with backticks and uses positional ? markers.
	MySQL = Dialect{Name: "mysql", Quote: backtick, Placeholder: question}

	// CQL quotes with double quotes and uses positional ? markers.
	CQL = Dialect{Name: "cql", Quote: doubleQuote, Placeholder: question}

	// DuckDB quotes with double quotes and uses positional ? markers.
	DuckDB = Dialect{Name: "duckdb", Quote: doubleQuote, Placeholder: question}
)

func doubleQuote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func backtick(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

func dollar(n int) string {
	return "$" + strconv.Itoa(n)
}

func question(int) string {
	return "?"
}

// QuoteTable quotes a table name, quoting each part of a qualified
// "schema.table" name separately.
func (d Dialect) QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.Quote(p)
	}
	return strings.Join(parts, ".")
}
