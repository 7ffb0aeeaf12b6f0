package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

// FXModule provides *Tracer and shuts it down, flushing pending spans, when
// the application stops.
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Supply(tracer.Config{ServiceName: "catalog-sync"}),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(NewTracerWithDI),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies of NewTracerWithDI.
type TracerParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewTracerWithDI creates the tracer for fx.
func NewTracerWithDI(params TracerParams) (*Tracer, error) {
	return NewClient(params.Config, params.Logger)
}

// RegisterTracerLifecycle shuts the tracer down on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer", nil, nil)
			return tracer.Shutdown(ctx)
		},
	})
}
