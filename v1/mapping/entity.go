package mapping

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	gormschema "gorm.io/gorm/schema"

	"github.com/Aleph-Alpha/orm/v1/schema"
)

var (
	// ErrUnknownColumn is returned by Bind when a mapped column is missing
	// from the catalog.
	ErrUnknownColumn = errors.New("mapped column not found in table")

	// ErrTypeMismatch is returned when a value of the wrong type is passed
	// to an entity.
	ErrTypeMismatch = errors.New("value does not match entity type")
)

// Column is one mapped struct field.
type Column struct {
	Name      string
	FieldName string
	Key       bool

	// AutoIncrement is set only by an explicit `autoIncrement` tag. gorm's
	// own flag, which every integer primary key gets, is not used.
	AutoIncrement bool

	Readable  bool
	Creatable bool
	Updatable bool

	// DataType is Unknown and HasDefault false until the entity is bound to
	// catalog columns.
	DataType   schema.DataType
	HasDefault bool

	field *gormschema.Field
}

// Entity is the table mapping of one struct type.
type Entity struct {
	Table   string
	Type    reflect.Type
	Columns []Column

	byName map[string]int
}

var (
	parseCache  sync.Map // gorm's own schema cache
	entityCache sync.Map // reflect.Type -> *Entity
	namer       gormschema.Namer = gormschema.NamingStrategy{}
)

// For returns the mapping of T.
func For[T any]() (*Entity, error) {
	return Parse(new(T))
}

// Parse returns the mapping of model, a struct or pointer to struct. Table
// and column names follow gorm conventions: a TableName method and
// `gorm:"column:...;primaryKey"` tags override the snake_case defaults.
func Parse(model any) (*Entity, error) {
	if model == nil {
		return nil, fmt.Errorf("parse entity: %w", gormschema.ErrUnsupportedDataType)
	}
	typ := reflect.TypeOf(model)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if cached, ok := entityCache.Load(typ); ok {
		return cached.(*Entity), nil
	}

	s, err := gormschema.Parse(model, &parseCache, namer)
	if err != nil {
		return nil, fmt.Errorf("parse entity %s: %w", typ, err)
	}

	e := &Entity{
		Table:  s.Table,
		Type:   s.ModelType,
		byName: make(map[string]int, len(s.Fields)),
	}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		e.byName[strings.ToLower(f.DBName)] = len(e.Columns)
		e.Columns = append(e.Columns, Column{
			Name:          f.DBName,
			FieldName:     f.Name,
			Key:           f.PrimaryKey,
			AutoIncrement: declaredAutoIncrement(f),
			Readable:      f.Readable,
			Creatable:     f.Creatable,
			Updatable:     f.Updatable,
			field:         f,
		})
	}

	actual, _ := entityCache.LoadOrStore(typ, e)
	return actual.(*Entity), nil
}

func declaredAutoIncrement(f *gormschema.Field) bool {
	v, ok := f.TagSettings["AUTOINCREMENT"]
	return ok && v != "" && !strings.EqualFold(v, "false")
}

// Column returns the mapped column called name, compared case-insensitively.
func (e *Entity) Column(name string) (Column, bool) {
	i, ok := e.byName[strings.ToLower(name)]
	if !ok {
		return Column{}, false
	}
	return e.Columns[i], true
}

// Keys returns the key columns in field order.
func (e *Entity) Keys() []Column {
	var keys []Column
	for _, c := range e.Columns {
		if c.Key {
			keys = append(keys, c)
		}
	}
	return keys
}

// Bind checks the mapping against catalog columns and returns a copy carrying
// their data types. When the struct declares no key, key columns are taken
// from the table's primary key constraints.
func (e *Entity) Bind(columns []schema.Column, constraints []schema.Constraint) (*Entity, error) {
	catalog := make(map[string]schema.Column, len(columns))
	for _, c := range columns {
		catalog[strings.ToLower(c.Name)] = c
	}

	bound := &Entity{
		Table:   e.Table,
		Type:    e.Type,
		Columns: make([]Column, len(e.Columns)),
		byName:  e.byName,
	}
	copy(bound.Columns, e.Columns)

	for i := range bound.Columns {
		c, ok := catalog[strings.ToLower(bound.Columns[i].Name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, e.Table, bound.Columns[i].Name)
		}
		bound.Columns[i].DataType = c.DataType
		bound.Columns[i].HasDefault = c.Default != ""
	}

	if len(bound.Keys()) == 0 {
		for _, con := range constraints {
			if con.Type != schema.PrimaryKey {
				continue
			}
			if i, ok := bound.byName[strings.ToLower(con.FromColumnName)]; ok {
				bound.Columns[i].Key = true
			}
		}
	}
	return bound, nil
}

// Values reads the given columns from item, a pointer to the entity struct.
func (e *Entity) Values(ctx context.Context, item any, columns []string) ([]any, error) {
	rv, err := e.structValue(item)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(columns))
	for i, name := range columns {
		c, ok := e.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, e.Table, name)
		}
		values[i], _ = c.field.ValueOf(ctx, rv)
	}
	return values, nil
}

// IsZero reports whether column holds its zero value in item.
func (e *Entity) IsZero(ctx context.Context, item any, column string) bool {
	rv, err := e.structValue(item)
	if err != nil {
		return false
	}
	c, ok := e.Column(column)
	if !ok {
		return false
	}
	_, zero := c.field.ValueOf(ctx, rv)
	return zero
}

func (e *Entity) structValue(item any) (reflect.Value, error) {
	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrTypeMismatch, e.Type)
		}
		rv = rv.Elem()
	}
	if rv.Type() != e.Type {
		return reflect.Value{}, fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, rv.Type(), e.Type)
	}
	return rv, nil
}
