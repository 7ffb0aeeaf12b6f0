package mariadb

import (
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/relational"
)

// MariaDB reports column_type (e.g. "int(10) unsigned", "tinyint(1)") as the
// native type so length and signedness survive.
const (
	tablesQuery = `SELECT t.TABLE_SCHEMA AS table_schema, t.TABLE_NAME AS table_name,
t.TABLE_TYPE AS table_type, v.VIEW_DEFINITION AS view_definition
FROM information_schema.TABLES t
LEFT JOIN information_schema.VIEWS v ON v.TABLE_SCHEMA = t.TABLE_SCHEMA AND v.TABLE_NAME = t.TABLE_NAME
WHERE t.TABLE_SCHEMA = ?
ORDER BY t.TABLE_NAME`

	columnsQuery = `SELECT TABLE_SCHEMA AS table_schema, TABLE_NAME AS table_name, COLUMN_NAME AS column_name,
ORDINAL_POSITION AS ordinal_position, COLUMN_TYPE AS data_type, IS_NULLABLE AS is_nullable,
CHARACTER_MAXIMUM_LENGTH AS character_maximum_length, NUMERIC_PRECISION AS numeric_precision,
NUMERIC_SCALE AS numeric_scale, COLUMN_DEFAULT AS column_default
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`

	constraintsQuery = `SELECT tc.CONSTRAINT_NAME AS constraint_name, tc.CONSTRAINT_TYPE AS constraint_type,
kcu.COLUMN_NAME AS column_name, kcu.REFERENCED_TABLE_NAME AS referenced_table_name,
kcu.REFERENCED_COLUMN_NAME AS referenced_column_name
FROM information_schema.TABLE_CONSTRAINTS tc
JOIN information_schema.KEY_COLUMN_USAGE kcu
  ON kcu.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA AND kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME AND kcu.TABLE_NAME = tc.TABLE_NAME
WHERE tc.TABLE_SCHEMA = ? AND tc.TABLE_NAME = ?
ORDER BY tc.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`

	routinesQuery = `SELECT ROUTINE_SCHEMA AS routine_schema, ROUTINE_NAME AS routine_name, ROUTINE_TYPE AS routine_type
FROM information_schema.ROUTINES
WHERE ROUTINE_SCHEMA = ?
ORDER BY ROUTINE_NAME`

	// Function results appear with ordinal 0 and no mode.
	parametersQuery = `SELECT PARAMETER_NAME AS parameter_name, ORDINAL_POSITION AS ordinal_position,
PARAMETER_MODE AS parameter_mode, DTD_IDENTIFIER AS data_type,
CHARACTER_MAXIMUM_LENGTH AS character_maximum_length, NUMERIC_PRECISION AS numeric_precision,
NUMERIC_SCALE AS numeric_scale
FROM information_schema.PARAMETERS
WHERE SPECIFIC_SCHEMA = ? AND SPECIFIC_NAME = ?
ORDER BY ORDINAL_POSITION`
)

// Catalog reads the MariaDB/MySQL information_schema. The database argument
// of every provider call is the database (schema) name.
var Catalog = relational.Catalog{
	Engine:           "mariadb",
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
