package relational

import (
	"database/sql"
	"strings"

	"github.com/Aleph-Alpha/orm/v1/schema"
	"github.com/Aleph-Alpha/orm/v1/typeconv"
)

// Catalog is the engine-specific part of an information_schema provider:
// the catalog statements and how to read their results.
//
// Statement arguments are positional and bound in this order:
//   - TablesQuery, RoutinesQuery: database
//   - ColumnsQuery, ConstraintsQuery: database, table
//   - ParametersQuery: database, routine
type Catalog struct {
	Engine string

	// TablesQuery lists tables and views together. Columns: table_schema,
	// table_name, table_type, view_definition.
	TablesQuery string

	// ColumnsQuery columns: table_schema, table_name, column_name,
	// ordinal_position, data_type, is_nullable, character_maximum_length,
	// numeric_precision, numeric_scale, column_default.
	ColumnsQuery string

	// ConstraintsQuery columns: constraint_name, constraint_type,
	// column_name, referenced_table_name, referenced_column_name.
	ConstraintsQuery string

	// RoutinesQuery columns: routine_schema, routine_name, routine_type.
	// Empty means the engine has no routine catalog.
	RoutinesQuery string

	// ParametersQuery columns: parameter_name, ordinal_position,
	// parameter_mode, data_type, character_maximum_length,
	// numeric_precision, numeric_scale.
	ParametersQuery string

	// Classify maps table_type to an object kind. Defaults to ClassifyTableType.
	Classify func(tableType string) schema.ObjectKind

	// ConvertType maps data_type to a DataType. Defaults to typeconv.Convert.
	ConvertType typeconv.Converter
}

// SupportsRoutines reports whether the catalog can list stored routines.
func (c Catalog) SupportsRoutines() bool {
	return c.RoutinesQuery != ""
}

func (c Catalog) withDefaults() Catalog {
	if c.Classify == nil {
		c.Classify = ClassifyTableType
	}
	if c.ConvertType == nil {
		c.ConvertType = typeconv.Convert
	}
	return c
}

// ClassifyTableType maps information_schema.tables.table_type values.
func ClassifyTableType(tableType string) schema.ObjectKind {
	switch strings.ToUpper(strings.TrimSpace(tableType)) {
	case "BASE TABLE", "TABLE", "SYSTEM VERSIONED":
		return schema.KindTable
	case "VIEW", "SYSTEM VIEW", "MATERIALIZED VIEW":
		return schema.KindView
	default:
		return schema.KindOther
	}
}

// Catalog row shapes. Nullable catalog columns use sql.Null* so drivers that
// report them as text still convert.

type tableRow struct {
	Schema     string         `gorm:"column:table_schema"`
	Name       string         `gorm:"column:table_name"`
	Type       string         `gorm:"column:table_type"`
	Definition sql.NullString `gorm:"column:view_definition"`
}

type columnRow struct {
	Schema    string         `gorm:"column:table_schema"`
	Table     string         `gorm:"column:table_name"`
	Name      string         `gorm:"column:column_name"`
	Ordinal   sql.NullInt64  `gorm:"column:ordinal_position"`
	DataType  string         `gorm:"column:data_type"`
	Nullable  string         `gorm:"column:is_nullable"`
	MaxLength sql.NullInt64  `gorm:"column:character_maximum_length"`
	Precision sql.NullInt64  `gorm:"column:numeric_precision"`
	Scale     sql.NullInt64  `gorm:"column:numeric_scale"`
	Default   sql.NullString `gorm:"column:column_default"`
}

type constraintRow struct {
	Name             string         `gorm:"column:constraint_name"`
	Type             string         `gorm:"column:constraint_type"`
	Column           string         `gorm:"column:column_name"`
	ReferencedTable  sql.NullString `gorm:"column:referenced_table_name"`
	ReferencedColumn sql.NullString `gorm:"column:referenced_column_name"`
}

type routineRow struct {
	Schema string `gorm:"column:routine_schema"`
	Name   string `gorm:"column:routine_name"`
	Type   string `gorm:"column:routine_type"`
}

type parameterRow struct {
	Name      sql.NullString `gorm:"column:parameter_name"`
	Ordinal   sql.NullInt64  `gorm:"column:ordinal_position"`
	Mode      sql.NullString `gorm:"column:parameter_mode"`
	DataType  string         `gorm:"column:data_type"`
	MaxLength sql.NullInt64  `gorm:"column:character_maximum_length"`
	Precision sql.NullInt64  `gorm:"column:numeric_precision"`
	Scale     sql.NullInt64  `gorm:"column:numeric_scale"`
}
