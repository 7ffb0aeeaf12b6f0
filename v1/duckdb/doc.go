// Package duckdb provides an in-process DuckDB engine.
//
// A DuckDB value is a connector.Connector and can back query executors,
// the access facade and the schema provider without any server:
//
//	db, err := duckdb.New(duckdb.Config{}) // in-memory
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	provider, err := duckdb.NewSchemaProvider(db)
//	tables, err := provider.GetTables(ctx, duckdb.DefaultSchema)
//
// Statements use ? placeholders and double-quoted identifiers.
package duckdb
