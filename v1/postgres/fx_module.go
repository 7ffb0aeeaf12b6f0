package postgres

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

// FXModule is an fx module that provides the Postgres connector.
// It registers the Postgres constructor for dependency injection
// and sets up lifecycle hooks to monitor and finally close the connection.
var FXModule = fx.Module("postgres",
	fx.Provide(NewPostgresClientWithDI),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies needed to create a Postgres connector via dependency injection.
type PostgresParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewPostgresClientWithDI creates a new Postgres connector using dependency injection.
//
// Parameters:
//   - params: A PostgresParams struct containing the Config and, optionally,
//     a logger.Logger. This struct embeds fx.In to enable automatic injection.
//
// Returns:
//   - *Postgres: A connected Postgres connector whose monitoring goroutines are
//     managed by the module's lifecycle hooks.
//
// Example usage with fx:
//
//	app := fx.New(
//	    postgres.FXModule,
//	    fx.Provide(
//	        func() postgres.Config {
//	            return loadPostgresConfig() // Your config loading function
//	        },
//	    ),
//	)
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config, WithLogger(params.Logger))
}

// PostgresLifeCycleParams groups the dependencies needed for Postgres lifecycle management.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
}

// RegisterPostgresLifecycle registers lifecycle hooks for the Postgres connector.
// It sets up:
// 1. Connection monitoring on application start
// 2. Automatic reconnection on application start
// 3. Closing the connection on application stop
//
// The function uses a WaitGroup to ensure that both goroutines complete
// before the pool is closed.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Postgres.MonitorConnection(ctx)
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Postgres.RetryConnection(ctx)
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			params.Postgres.closeShutdownOnce.Do(func() {
				close(params.Postgres.shutdownSignal)
			})
			cancel()
			wg.Wait()

			return params.Postgres.Close()
		},
	})
}
