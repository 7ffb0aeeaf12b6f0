package redis

import (
	"time"

	"github.com/Aleph-Alpha/orm/v1/observability"
)

// observeOperation notifies the observer about a cache lookup if one is
// configured. Resource is the database, SubResource the table or routine.
func (c *CachedProvider) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, hit bool) {
	if c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "schema_cache",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    map[string]interface{}{"hit": hit},
	})
}
