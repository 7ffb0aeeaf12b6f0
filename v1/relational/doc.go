// Package relational implements schema.Provider for engines that expose an
// information_schema style catalog.
//
// Engines describe their catalog as data, a Catalog holding the catalog
// statements and the row conversions, and NewProvider turns it into a
// provider whose statements are reusable query executors:
//
//	p, err := relational.NewProvider(conn, postgres.Catalog)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	tables, err := p.GetTables(ctx, "public")
//	cols, err := p.GetColumns(ctx, "public", "Orders")
//
// Tables and views share one catalog statement and are split by Classify.
// Engines without a routine catalog leave RoutinesQuery empty; their
// GetStoredProcedures and GetParameters return empty lists.
package relational
