package mapping

import (
	"context"
	"fmt"
	"reflect"

	gormschema "gorm.io/gorm/schema"
)

// Rows is the cursor Materialize reads from.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Materialize reads every remaining row into a new slice of T. Result
// columns without a readable mapped field are skipped. The caller closes rows.
func Materialize[T any](ctx context.Context, e *Entity, rows Rows) ([]T, error) {
	var zero T
	if t := reflect.TypeOf(zero); t != e.Type {
		return nil, fmt.Errorf("%w: got %v, want %s", ErrTypeMismatch, t, e.Type)
	}

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	fields := make([]*gormschema.Field, len(names))
	for i, name := range names {
		if c, ok := e.Column(name); ok && c.Readable {
			fields[i] = c.field
		}
	}

	values := make([]any, len(names))
	dest := make([]any, len(names))
	for i := range values {
		dest[i] = &values[i]
	}

	result := make([]T, 0)
	for rows.Next() {
		for i := range values {
			values[i] = nil
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(result), err)
		}

		var item T
		rv := reflect.ValueOf(&item).Elem()
		for i, f := range fields {
			if f == nil {
				continue
			}
			if err := f.Set(ctx, rv, values[i]); err != nil {
				return nil, fmt.Errorf("set %s.%s from column %s: %w", e.Table, f.Name, names[i], err)
			}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}
