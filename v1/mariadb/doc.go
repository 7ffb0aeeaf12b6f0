// Package mariadb provides a MariaDB/MySQL engine for the connector API.
//
// A MariaDB value owns a GORM-managed pool (go-sql-driver/mysql underneath),
// monitors it and reconnects on failure. Statements use ? placeholders and
// backtick-quoted identifiers.
//
//	db, err := mariadb.NewMariaDB(mariadb.Config{
//		Connection: mariadb.Connection{
//			Host: "localhost", Port: "3306",
//			User: "root", Password: "secret", DbName: "shop",
//		},
//	})
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	provider, err := mariadb.NewSchemaProvider(db)
//	cols, err := provider.GetColumns(ctx, "shop", "Orders")
//
// Column native types come from column_type, so tinyint(1) is reported as
// Boolean. TranslateError and IsRetryable classify server error numbers.
package mariadb
