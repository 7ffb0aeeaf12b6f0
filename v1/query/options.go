package query

import (
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/mapping"
	"github.com/Aleph-Alpha/orm/v1/observability"
)

// Option configures an Executor.
type Option func(*options)

type options struct {
	log      logger.Logger
	observer observability.Observer
	entity   *mapping.Entity
	prepare  bool
}

func buildOptions(opts []Option) options {
	o := options{log: logger.NewNopLogger(), prepare: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger for statement diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithObserver reports every execution to obs.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithEntity uses e instead of the cached mapping of T, e.g. an entity
// returned by mapping.Entity.Bind.
func WithEntity(e *mapping.Entity) Option {
	return func(o *options) { o.entity = e }
}

// WithoutPrepare sends the base statement as plain text on every call even
// when the connector can prepare statements.
func WithoutPrepare() Option {
	return func(o *options) { o.prepare = false }
}
