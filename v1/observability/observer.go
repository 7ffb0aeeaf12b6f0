// Package observability defines the hook components use to report finished
// operations to metrics or tracing backends.
package observability

import "time"

// OperationContext describes one finished operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "query" or "schema".
	Component string

	// Operation is what was done, e.g. "execute", "insert", "get_columns".
	Operation string

	// Resource is the main object operated on, usually a table name.
	Resource string

	// SubResource adds detail such as the engine name.
	SubResource string

	Duration time.Duration
	Error    error

	// Size is the number of rows returned or affected.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives OperationContext values. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx OperationContext)

func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans one operation out to several observers. Nil entries are skipped.
func Multi(observers ...Observer) Observer {
	var list []Observer
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return ObserverFunc(func(ctx OperationContext) {
		for _, o := range list {
			o.ObserveOperation(ctx)
		}
	})
}
