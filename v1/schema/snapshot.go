package schema

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultLoadConcurrency bounds the number of per-object catalog reads Load
// keeps in flight.
const DefaultLoadConcurrency = 4

// TableSchema groups a table or view with its columns and constraints.
type TableSchema struct {
	Name        string
	Kind        ObjectKind
	Columns     []Column
	Constraints []Constraint
}

// RoutineSchema groups a stored routine with its parameters.
type RoutineSchema struct {
	StoredProcedure
	Parameters []Parameter
}

// Database is a point-in-time snapshot of one database's catalog.
type Database struct {
	Name     string
	Tables   []TableSchema
	Views    []TableSchema
	Routines []RoutineSchema
}

// Table returns the table or view called name, if present in the snapshot.
func (d *Database) Table(name string) (TableSchema, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	for _, v := range d.Views {
		if v.Name == name {
			return v, true
		}
	}
	return TableSchema{}, false
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	concurrency int
	routines    bool
}

// WithConcurrency sets how many per-object reads run at once. The Provider
// must allow overlapping calls; the bundled providers do, bounded by their
// connector's pool.
func WithConcurrency(n int) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithoutRoutines skips stored procedures and their parameters.
func WithoutRoutines() LoadOption {
	return func(o *loadOptions) { o.routines = false }
}

// Load reads a full snapshot of database through p. filter restricts the
// tables, views and routines the same way the Provider methods do.
//
// Per-object reads run concurrently; the first failure cancels the rest and
// is returned.
func Load(ctx context.Context, p Provider, database string, filter []string, opts ...LoadOption) (*Database, error) {
	o := loadOptions{concurrency: DefaultLoadConcurrency, routines: true}
	for _, opt := range opts {
		opt(&o)
	}

	tables, err := p.GetTables(ctx, database, filter...)
	if err != nil {
		return nil, fmt.Errorf("load tables of %s: %w", database, err)
	}
	views, err := p.GetViews(ctx, database, filter...)
	if err != nil {
		return nil, fmt.Errorf("load views of %s: %w", database, err)
	}
	var routines []StoredProcedure
	if o.routines {
		routines, err = p.GetStoredProcedures(ctx, database, filter...)
		if err != nil {
			return nil, fmt.Errorf("load routines of %s: %w", database, err)
		}
	}

	db := &Database{
		Name:     database,
		Tables:   make([]TableSchema, len(tables)),
		Views:    make([]TableSchema, len(views)),
		Routines: make([]RoutineSchema, len(routines)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, t := range tables {
		g.Go(func() error {
			ts, err := loadTable(gctx, p, database, t.Name, KindTable, true)
			if err != nil {
				return err
			}
			db.Tables[i] = ts
			return nil
		})
	}
	for i, v := range views {
		g.Go(func() error {
			ts, err := loadTable(gctx, p, database, v.Name, KindView, false)
			if err != nil {
				return err
			}
			db.Views[i] = ts
			return nil
		})
	}
	for i, r := range routines {
		g.Go(func() error {
			params, err := p.GetParameters(gctx, database, r.Name)
			if err != nil {
				return fmt.Errorf("load parameters of %s.%s: %w", database, r.Name, err)
			}
			db.Routines[i] = RoutineSchema{StoredProcedure: r, Parameters: params}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return db, nil
}

func loadTable(ctx context.Context, p Provider, database, name string, kind ObjectKind, constraints bool) (TableSchema, error) {
	ts := TableSchema{Name: name, Kind: kind, Constraints: []Constraint{}}

	cols, err := p.GetColumns(ctx, database, name)
	if err != nil {
		return ts, fmt.Errorf("load columns of %s.%s: %w", database, name, err)
	}
	ts.Columns = cols

	if constraints {
		cons, err := p.GetConstraints(ctx, database, name)
		if err != nil {
			return ts, fmt.Errorf("load constraints of %s.%s: %w", database, name, err)
		}
		ts.Constraints = cons
	}
	return ts, nil
}
