// Package schema defines the engine-neutral catalog model: tables, views,
// columns, constraints, stored procedures and their parameters, plus the
// Provider contract every engine implements to read them.
//
// Descriptors are plain values. A Provider creates them from catalog rows and
// hands them to the caller; they hold no reference back to the connection.
//
// Filtering
//
// GetTables, GetViews and GetStoredProcedures accept an optional include list
// of names. An empty list returns everything. Providers apply the list through
// Include / FilterByName so the rule is identical across engines:
//
//	tables, err := provider.GetTables(ctx, "shop", "Orders", "Customers")
//
// Snapshots
//
// Load walks a whole database and fetches the per-table metadata concurrently:
//
//	db, err := schema.Load(ctx, provider, "shop", nil, schema.WithConcurrency(8))
//	if err != nil {
//	    return err
//	}
//	orders, ok := db.Table("Orders")
package schema
