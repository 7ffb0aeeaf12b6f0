package connector

import (
	"errors"
	"fmt"
	"reflect"
)

// StaticRows is an in-memory Rows.
type StaticRows struct {
	columns []string
	data    [][]any
	pos     int
	closed  bool
	err     error
}

// NewStaticRows returns rows over data. Each row holds one value per column.
func NewStaticRows(columns []string, data ...[]any) *StaticRows {
	return &StaticRows{columns: columns, data: data}
}

// WithError makes Err report err once all rows are read.
func (r *StaticRows) WithError(err error) *StaticRows {
	r.err = err
	return r
}

func (r *StaticRows) Columns() ([]string, error) {
	if r.closed {
		return nil, errors.New("rows are closed")
	}
	return r.columns, nil
}

func (r *StaticRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

// Scan copies the current row into dest. *any destinations receive the raw
// value; other pointers are assigned when the value is assignable or convertible.
func (r *StaticRows) Scan(dest ...any) error {
	if r.closed || r.pos == 0 || r.pos > len(r.data) {
		return errors.New("scan called without a current row")
	}
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, d := range dest {
		if p, ok := d.(*any); ok {
			*p = row[i]
			continue
		}
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("scan column %s: %w", r.columns[i], err)
		}
	}
	return nil
}

// Close is idempotent.
func (r *StaticRows) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *StaticRows) Closed() bool {
	return r.closed
}

func (r *StaticRows) Err() error {
	return r.err
}

func assign(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return fmt.Errorf("destination %T is not a non-nil pointer", dest)
	}
	target := dv.Elem()
	if src == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(target.Type()):
		target.Set(sv)
	case sv.Type().ConvertibleTo(target.Type()):
		target.Set(sv.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", src, target.Type())
	}
	return nil
}
