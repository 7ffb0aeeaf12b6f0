package duckdb

import (
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/relational"
)

// DefaultSchema is the schema tables are created in unless qualified.
const DefaultSchema = "main"

const (
	tablesQuery = `SELECT t.table_schema, t.table_name, t.table_type, v.sql AS view_definition
FROM information_schema.tables t
LEFT JOIN duckdb_views() v ON v.database_name = t.table_catalog AND v.schema_name = t.table_schema AND v.view_name = t.table_name
WHERE t.table_catalog = current_database() AND t.table_schema = ?
ORDER BY t.table_name`

	columnsQuery = `SELECT table_schema, table_name, column_name, ordinal_position, data_type, is_nullable,
character_maximum_length, numeric_precision, numeric_scale, column_default
FROM information_schema.columns
WHERE table_catalog = current_database() AND table_schema = ? AND table_name = ?
ORDER BY ordinal_position`

	constraintsQuery = `SELECT tc.constraint_name, tc.constraint_type, kcu.column_name,
rk.table_name AS referenced_table_name, rk.column_name AS referenced_column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_schema = tc.constraint_schema AND kcu.constraint_name = tc.constraint_name AND kcu.table_name = tc.table_name
LEFT JOIN information_schema.referential_constraints rc
  ON rc.constraint_schema = tc.constraint_schema AND rc.constraint_name = tc.constraint_name
LEFT JOIN information_schema.key_column_usage rk
  ON rk.constraint_schema = rc.unique_constraint_schema AND rk.constraint_name = rc.unique_constraint_name
  AND rk.ordinal_position = kcu.position_in_unique_constraint
WHERE tc.table_schema = ? AND tc.table_name = ?
ORDER BY tc.constraint_name, kcu.ordinal_position`
)

// Catalog reads DuckDB's information_schema. DuckDB has no stored routines.
var Catalog = relational.Catalog{
	Engine:           "duckdb",
	TablesQuery:      tablesQuery,
	ColumnsQuery:     columnsQuery,
	ConstraintsQuery: constraintsQuery,
}

// NewSchemaProvider returns a schema provider reading conn's catalog.
func NewSchemaProvider(conn connector.Connector, opts ...relational.Option) (*relational.Provider, error) {
	return relational.NewProvider(conn, Catalog, opts...)
}
