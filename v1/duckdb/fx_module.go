package duckdb

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

// FXModule provides *DuckDB and closes it when the application stops.
var FXModule = fx.Module("duckdb",
	fx.Provide(NewDuckDBWithDI),
	fx.Invoke(RegisterDuckDBLifecycle),
)

// DuckDBParams groups the dependencies of NewDuckDBWithDI.
type DuckDBParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewDuckDBWithDI opens the database for fx.
func NewDuckDBWithDI(params DuckDBParams) (*DuckDB, error) {
	return New(params.Config, WithLogger(params.Logger))
}

// RegisterDuckDBLifecycle closes the database on stop.
func RegisterDuckDBLifecycle(lc fx.Lifecycle, d *DuckDB) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return d.Close()
		},
	})
}
