package cassandra

import (
	"fmt"
	"strings"
)

// Catalog describes where a Cassandra version keeps its schema metadata.
// Every statement is issued with a "keyspace_name = ?" predicate; the
// columns statement is additionally narrowed by TableKey.
type Catalog struct {
	Version string

	// TablesQuery yields keyspace_name, table_name and optionally kind.
	TablesQuery string

	// ViewsQuery yields keyspace_name, table_name and optionally kind and
	// definition. It may equal TablesQuery when one listing holds both.
	ViewsQuery string

	// ColumnsQuery yields keyspace_name, table_name, column_name, kind,
	// position and type.
	ColumnsQuery string

	// TableKey is the catalog column naming the table in ColumnsQuery.
	TableKey string

	// IsTable and IsView select rows of TablesQuery and ViewsQuery by kind.
	IsTable func(kind string) bool
	IsView  func(kind string) bool
}

// CatalogLegacy reads the pre-3.0 system keyspace. Column families of type
// "Standard" are tables and those of type "View" are views.
var CatalogLegacy = Catalog{
	Version: CatalogVersionLegacy,
	TablesQuery: `SELECT keyspace_name, columnfamily_name AS table_name, "type" AS kind
FROM system.schema_columnfamilies`,
	ViewsQuery: `SELECT keyspace_name, columnfamily_name AS table_name, "type" AS kind
FROM system.schema_columnfamilies`,
	ColumnsQuery: `SELECT keyspace_name, columnfamily_name AS table_name, column_name,
	"type" AS kind, component_index AS position, validator AS "type"
FROM system.schema_columns`,
	TableKey: "columnfamily_name",
	IsTable:  func(kind string) bool { return kind == "Standard" },
	IsView:   func(kind string) bool { return kind == "View" },
}

// CatalogSystemSchema reads system_schema, where tables and materialized
// views live in separate listings.
var CatalogSystemSchema = Catalog{
	Version:     CatalogVersionSystemSchema,
	TablesQuery: `SELECT keyspace_name, table_name FROM system_schema.tables`,
	ViewsQuery: `SELECT keyspace_name, view_name AS table_name, where_clause AS definition
FROM system_schema.views`,
	ColumnsQuery: `SELECT keyspace_name, table_name, column_name, kind, position, "type"
FROM system_schema.columns`,
	TableKey: "table_name",
	IsTable:  func(string) bool { return true },
	IsView:   func(string) bool { return true },
}

// CatalogFor returns the catalog for a Config.CatalogVersion value. An empty
// version selects CatalogSystemSchema.
func CatalogFor(version string) (Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(version)) {
	case "", CatalogVersionSystemSchema:
		return CatalogSystemSchema, nil
	case CatalogVersionLegacy:
		return CatalogLegacy, nil
	default:
		return Catalog{}, fmt.Errorf("cassandra: unknown catalog version %q", version)
	}
}

type tableRow struct {
	Keyspace   string `gorm:"column:keyspace_name"`
	Name       string `gorm:"column:table_name"`
	Kind       string `gorm:"column:kind"`
	Definition string `gorm:"column:definition"`
}

type columnRow struct {
	Keyspace string `gorm:"column:keyspace_name"`
	Table    string `gorm:"column:table_name"`
	Name     string `gorm:"column:column_name"`
	Kind     string `gorm:"column:kind"`
	Position int    `gorm:"column:position"`
	Type     string `gorm:"column:type"`
}

// Column kinds as reported by both catalog layouts.
const (
	kindPartitionKey  = "partition_key"
	kindClusteringKey = "clustering"
	kindClusteringOld = "clustering_key"
)

// keyRank orders partition keys first, clustering keys next and all other
// columns last.
func keyRank(kind string) int {
	switch strings.ToLower(kind) {
	case kindPartitionKey:
		return 0
	case kindClusteringKey, kindClusteringOld:
		return 1
	default:
		return 2
	}
}
