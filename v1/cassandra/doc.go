// Package cassandra connects to Apache Cassandra through gocql and reads
// keyspace metadata from its system catalogs.
//
// Two catalog layouts are supported. CatalogSystemSchema reads the
// system_schema keyspace of Cassandra 3.0 and later; CatalogLegacy reads
// system.schema_columnfamilies and system.schema_columns of 2.x clusters,
// where column types are reported as marshal validator classes.
//
// Basic usage:
//
//	c, err := cassandra.NewCassandra(cassandra.Config{
//		Hosts:    []string{"127.0.0.1"},
//		Keyspace: "shop",
//	})
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	catalog, err := cassandra.CatalogFor(cfg.CatalogVersion)
//	if err != nil {
//		return err
//	}
//	p, err := cassandra.NewSchemaProvider(c, catalog)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	keys, err := p.GetConstraints(ctx, "shop", "orders")
//
// Partition key columns are reported as one PrimaryKey constraint each, in
// partition key order. Cassandra has no stored routines, so
// GetStoredProcedures and GetParameters return empty lists.
//
// Queries are read to completion before ExecuteQuery returns. ExecuteNonQuery
// always reports 0 affected rows because the protocol does not carry a count.
package cassandra
