package postgres

import (
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/relational"
)

// DefaultSchema is the schema unqualified objects live in.
const DefaultSchema = "public"

// information_schema columns are domain types; they are cast so every driver
// reports plain integers and text.
const (
	tablesQuery = `SELECT t.table_schema::text AS table_schema, t.table_name::text AS table_name,
t.table_type::text AS table_type, v.view_definition::text AS view_definition
FROM information_schema.tables t
LEFT JOIN information_schema.views v ON v.table_schema = t.table_schema AND v.table_name = t.table_name
WHERE t.table_schema = $1
ORDER BY t.table_name`

	columnsQuery = `SELECT table_schema::text AS table_schema, table_name::text AS table_name,
column_name::text AS column_name, ordinal_position::int AS ordinal_position,
CASE WHEN data_type IN ('ARRAY', 'USER-DEFINED') THEN udt_name::text ELSE data_type::text END AS data_type,
is_nullable::text AS is_nullable, character_maximum_length::int AS character_maximum_length,
numeric_precision::int AS numeric_precision, numeric_scale::int AS numeric_scale,
column_default::text AS column_default
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`

	constraintsQuery = `SELECT tc.constraint_name::text AS constraint_name, tc.constraint_type::text AS constraint_type,
kcu.column_name::text AS column_name,
rk.table_name::text AS referenced_table_name, rk.column_name::text AS referenced_column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_schema = tc.constraint_schema AND kcu.constraint_name = tc.constraint_name AND kcu.table_name = tc.table_name
LEFT JOIN information_schema.referential_constraints rc
  ON rc.constraint_schema = tc.constraint_schema AND rc.constraint_name = tc.constraint_name
LEFT JOIN information_schema.key_column_usage rk
  ON rk.constraint_schema = rc.unique_constraint_schema AND rk.constraint_name = rc.unique_constraint_name
  AND rk.ordinal_position = kcu.position_in_unique_constraint
WHERE tc.table_schema = $1 AND tc.table_name = $2
ORDER BY tc.constraint_name, kcu.ordinal_position`

	routinesQuery = `SELECT DISTINCT routine_schema::text AS routine_schema, routine_name::text AS routine_name,
COALESCE(routine_type::text, 'FUNCTION') AS routine_type
FROM information_schema.routines
WHERE routine_schema = $1
ORDER BY routine_name`

	// The function result is reported as an unnamed parameter without a mode.
	parametersQuery = `SELECT parameter_name, ordinal_position, parameter_mode, data_type,
character_maximum_length, numeric_precision, numeric_scale
FROM (
  SELECT p.parameter_name::text AS parameter_name, p.ordinal_position::int AS ordinal_position,
    p.parameter_mode::text AS parameter_mode,
    CASE WHEN p.data_type IN ('ARRAY', 'USER-DEFINED') THEN p.udt_name::text ELSE p.data_type::text END AS data_type,
    p.character_maximum_length::int AS character_maximum_length,
    p.numeric_precision::int AS numeric_precision, p.numeric_scale::int AS numeric_scale
  FROM information_schema.parameters p
  JOIN information_schema.routines r ON r.specific_schema = p.specific_schema AND r.specific_name = p.specific_name
  WHERE r.routine_schema = $1 AND r.routine_name = $2
  UNION ALL
  SELECT NULL, 0, NULL,
    CASE WHEN r.data_type IN ('ARRAY', 'USER-DEFINED') THEN r.type_udt_name::text ELSE r.data_type::text END,
    r.character_maximum_length::int, r.numeric_precision::int, r.numeric_scale::int
  FROM information_schema.routines r
  WHERE r.routine_schema = $1 AND r.routine_name = $2 AND r.data_type IS NOT NULL AND r.data_type <> 'void'
) params
ORDER BY ordinal_position`
)

// Catalog reads PostgreSQL's information_schema. The database argument of
// every provider call is the schema name, e.g. DefaultSchema.
var Catalog = relational.Catalog{
	Engine:           "postgres",
	TablesQuery:      tablesQuery,
	ColumnsQuery:     columnsQuery,
	ConstraintsQuery: constraintsQuery,
	RoutinesQuery:    routinesQuery,
	ParametersQuery:  parametersQuery,
}

// NewSchemaProvider returns a schema provider reading conn's catalog.
func NewSchemaProvider(conn connector.Connector, opts ...relational.Option) (*relational.Provider, error) {
	return relational.NewProvider(conn, Catalog, opts...)
}
