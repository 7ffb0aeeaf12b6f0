// Package access provides create, read, update and delete operations for one
// mapped entity type.
//
// Statements are rendered by the command package in the connector's dialect
// and executed through the connector. Reads go through query executors: Select
// uses a single-use executor, and Query returns one the caller may reuse for
// many reads.
//
//	orders, err := access.New[Order](ctx, conn, access.WithSchema(provider, "public"))
//	if err != nil {
//		return err
//	}
//	if err := orders.Insert(ctx, &Order{Name: "first"}); err != nil {
//		return err
//	}
//	open, err := orders.Select(ctx, `"Status" = $1`, "open")
//
// WithSchema reads the table's columns and constraints once, when the Access
// is created, and fails if a mapped column is not in the catalog.
package access
