package access

import (
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

// Option configures an Access.
type Option func(*options)

type options struct {
	log      logger.Logger
	observer observability.Observer
	provider schema.Provider
	database string
}

// WithSchema binds the entity mapping to the catalog of table in database,
// read once from provider when the Access is created. Mapped columns missing
// from the catalog fail construction, and a struct without key fields takes
// its keys from the table's primary key.
func WithSchema(provider schema.Provider, database string) Option {
	return func(o *options) {
		o.provider = provider
		o.database = database
	}
}

// WithLogger sets the logger for statement diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithObserver reports every operation to obs.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}
