package mariadb

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

// FXModule is an fx module that provides the MariaDB connector.
// It registers the MariaDB constructor for dependency injection
// and sets up lifecycle hooks to monitor and finally close the connection.
var FXModule = fx.Module("mariadb",
	fx.Provide(NewMariaDBClientWithDI),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// MariaDBParams groups the dependencies needed to create a MariaDB connector via dependency injection.
//
// The embedded fx.In marker enables automatic injection of the struct fields
// from the dependency container. Logger is optional; without it the
// connector logs nothing.
type MariaDBParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewMariaDBClientWithDI creates a new MariaDB connector using dependency injection.
// This function is designed to be used with Uber's fx dependency injection framework
// where the Config and optional Logger are provided via the MariaDBParams struct.
//
// Parameters:
//   - params: A MariaDBParams struct containing the Config and, optionally,
//     a logger.Logger. This struct embeds fx.In to enable automatic injection.
//
// Returns:
//   - *MariaDB: A connected MariaDB connector. RegisterMariaDBLifecycle starts
//     its monitoring goroutines and closes it on stop.
//   - error: The connection error when the initial connect fails
//
// Example usage with fx:
//
//	app := fx.New(
//	    mariadb.FXModule,
//	    fx.Provide(
//	        func() mariadb.Config {
//	            return loadMariaDBConfig() // Your config loading function
//	        },
//	    ),
//	)
func NewMariaDBClientWithDI(params MariaDBParams) (*MariaDB, error) {
	return NewMariaDB(params.Config, WithLogger(params.Logger))
}

// MariaDBLifeCycleParams groups the dependencies needed for MariaDB lifecycle management.
type MariaDBLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	MariaDB   *MariaDB
}

// RegisterMariaDBLifecycle starts connection monitoring and reconnection on
// application start and closes the connection on stop, after both
// goroutines have returned.
func RegisterMariaDBLifecycle(params MariaDBLifeCycleParams) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.MariaDB.MonitorConnection(ctx)
			}()
			go func() {
				defer wg.Done()
				params.MariaDB.RetryConnection(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			params.MariaDB.closeShutdownOnce.Do(func() {
				close(params.MariaDB.shutdownSignal)
			})
			cancel()
			wg.Wait()

			return params.MariaDB.Close()
		},
	})
}
