// Package postgres provides a PostgreSQL engine for the connector API.
//
// A Postgres value owns a GORM-managed pool (pgx underneath), monitors it
// and reconnects transparently. It implements connector.Connector and
// connector.Preparer, so it can back query executors, the access facade and
// the information_schema provider.
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/orm/v1/postgres"
//		"github.com/Aleph-Alpha/orm/v1/query"
//	)
//
//	pg, err := postgres.NewPostgres(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "password",
//			DbName:   "shop",
//		},
//	})
//	if err != nil {
//		return err
//	}
//	defer pg.Close()
//
//	orders, err := query.Run[Order](ctx, pg, `"Status" = $1`, []any{"open"})
//
// Schema Introspection:
//
//	provider, err := postgres.NewSchemaProvider(pg)
//	tables, err := provider.GetTables(ctx, postgres.DefaultSchema)
//	routines, err := provider.GetStoredProcedures(ctx, postgres.DefaultSchema)
//
// Error Handling:
//
// Connector errors keep the server's message. TranslateError maps SQLSTATE
// codes onto package sentinels such as ErrDuplicateKey and ErrUndefinedTable;
// IsRetryable reports serialization failures, deadlocks and connection loss.
//
//	if _, err := pg.ExecuteNonQuery(ctx, stmt, args...); err != nil {
//		if errors.Is(postgres.TranslateError(err), postgres.ErrDuplicateKey) {
//			// handle conflict
//		}
//	}
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		postgres.FXModule,
//		fx.Provide(func() postgres.Config { return loadConfig() }),
//	)
//
// Thread Safety:
//
// All methods are safe for concurrent use. The active pool is swapped
// atomically on reconnection.
package postgres
