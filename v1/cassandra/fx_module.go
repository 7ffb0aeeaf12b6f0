package cassandra

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

// FXModule provides *Cassandra and closes the session when the application
// stops.
var FXModule = fx.Module("cassandra",
	fx.Provide(NewCassandraWithDI),
	fx.Invoke(RegisterCassandraLifecycle),
)

// CassandraParams groups the dependencies of NewCassandraWithDI.
type CassandraParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewCassandraWithDI creates the session for fx.
func NewCassandraWithDI(params CassandraParams) (*Cassandra, error) {
	return NewCassandra(params.Config, WithLogger(params.Logger))
}

// RegisterCassandraLifecycle closes the session on stop.
func RegisterCassandraLifecycle(lc fx.Lifecycle, c *Cassandra) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
}
