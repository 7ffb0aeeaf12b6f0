// Package database selects a storage engine from configuration and provides
// its connector and schema provider.
//
// Application code depends on connector.Connector and schema.Provider; the
// concrete engine (postgres, mariadb, cassandra or duckdb) is chosen by
// Config.Type rather than by the caller's types.
//
// # Basic Usage
//
//	cfg, err := database.LoadConfig("config.yaml")
//	if err != nil {
//	    return err
//	}
//	conn, err := database.NewConnector(cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	provider, err := database.NewSchemaProvider(conn, cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
// # Configuration File
//
// LoadConfig reads YAML. Keys follow the mapstructure tags of each engine's
// Config; environment variables prefixed with ORM_ override them:
//
//	type: postgres
//	postgres:
//	  connection:
//	    host: localhost
//	    port: "5432"
//	    user: app
//	    db_name: shop
//	  connection_details:
//	    max_open_conns: 20
//
// With this file, ORM_POSTGRES_CONNECTION_HOST=db.internal moves the
// connection to another host.
//
// # Using with Fx Dependency Injection
//
//	app := fx.New(
//	    database.FXModule,
//	    logger.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.DuckDBConfig(duckdb.Config{Path: "shop.duckdb"})
//	    }),
//	    fx.Invoke(func(conn connector.Connector, p schema.Provider) {
//	        // ...
//	    }),
//	)
//
// FXModule starts connection supervision for engines that support it
// (postgres and mariadb) and closes the provider and the connector when the
// application stops.
package database
