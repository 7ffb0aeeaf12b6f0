package database

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

// FXModule provides connector.Connector and schema.Provider for the engine
// selected by Config.Type, and closes both when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.PostgresConfig(postgres.Config{...})
//	    }),
//	    fx.Invoke(func(conn connector.Connector, p schema.Provider) {
//	        // ...
//	    }),
//	)
var FXModule = fx.Module("database",
	fx.Provide(NewConnectorWithDI, NewSchemaProviderWithDI),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create the connector.
type DatabaseParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewConnectorWithDI opens the configured engine for fx.
func NewConnectorWithDI(params DatabaseParams) (connector.Connector, error) {
	return NewConnector(params.Config, params.Logger)
}

// SchemaParams groups the dependencies needed to create the schema provider.
type SchemaParams struct {
	fx.In

	Config    Config
	Connector connector.Connector
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewSchemaProviderWithDI creates the schema provider for fx.
func NewSchemaProviderWithDI(params SchemaParams) (schema.Provider, error) {
	return NewSchemaProvider(params.Connector, params.Config,
		WithLogger(params.Logger), WithObserver(params.Observer))
}

// DatabaseLifecycleParams groups the dependencies needed for lifecycle management.
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Connector connector.Connector
	Provider  schema.Provider
	Logger    logger.Logger `optional:"true"`
}

// supervised is implemented by connectors that watch their own pool.
type supervised interface {
	MonitorConnection(ctx context.Context)
	RetryConnection(ctx context.Context)
}

// RegisterDatabaseLifecycle starts connection supervision for engines that
// support it and, on stop, closes the provider and then the connector.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	log := params.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if s, ok := params.Connector.(supervised); ok {
				wg.Add(2)
				go func() {
					defer wg.Done()
					s.MonitorConnection(ctx)
				}()
				go func() {
					defer wg.Done()
					s.RetryConnection(ctx)
				}()
			}
			log.Info("database connector started", nil, map[string]interface{}{
				"dialect": params.Connector.Dialect().Name,
			})
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			log.Info("shutting down database connector", nil, nil)
			return errors.Join(params.Provider.Close(), params.Connector.Close())
		},
	})
}
