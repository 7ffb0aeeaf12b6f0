package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/orm/v1/mapping"
)

var (
	// ErrNoKey is returned for UPDATE and DELETE on an entity without key columns.
	ErrNoKey = errors.New("entity has no key columns")

	// ErrNothingToUpdate is returned for UPDATE when every column is a key or read-only.
	ErrNothingToUpdate = errors.New("entity has no updatable columns")

	// ErrNothingToInsert is returned for INSERT when no column is creatable.
	ErrNothingToInsert = errors.New("entity has no insertable columns")
)

// Statement is generated statement text plus the columns whose values bind to
// its placeholders, in order.
type Statement struct {
	Text    string
	Columns []string
}

// Builder renders statements for one entity in one dialect.
type Builder struct {
	dialect Dialect
	entity  *mapping.Entity
}

// NewBuilder returns a Builder for entity.
func NewBuilder(dialect Dialect, entity *mapping.Entity) *Builder {
	return &Builder{dialect: dialect, entity: entity}
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Select renders SELECT over every readable column. A non-empty predicate is
// appended as the WHERE clause verbatim.
func (b *Builder) Select(predicate string) string {
	cols := make([]string, 0, len(b.entity.Columns))
	for _, c := range b.entity.Columns {
		if c.Readable {
			cols = append(cols, b.dialect.Quote(c.Name))
		}
	}
	text := "SELECT " + strings.Join(cols, ", ") + " FROM " + b.dialect.QuoteTable(b.entity.Table)
	return Where(text, predicate)
}

// Insert renders INSERT over every creatable column except omit.
func (b *Builder) Insert(omit ...string) (Statement, error) {
	var (
		names []string
		marks []string
		bind  []string
	)
	for _, c := range b.entity.Columns {
		if !c.Creatable || contains(omit, c.Name) {
			continue
		}
		bind = append(bind, c.Name)
		names = append(names, b.dialect.Quote(c.Name))
		marks = append(marks, b.dialect.Placeholder(len(bind)))
	}
	if len(bind) == 0 {
		return Statement{}, fmt.Errorf("insert into %s: %w", b.entity.Table, ErrNothingToInsert)
	}
	text := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.dialect.QuoteTable(b.entity.Table),
		strings.Join(names, ", "),
		strings.Join(marks, ", "))
	return Statement{Text: text, Columns: bind}, nil
}

// Update renders UPDATE of every updatable non-key column, matched by key.
func (b *Builder) Update() (Statement, error) {
	keys := b.entity.Keys()
	if len(keys) == 0 {
		return Statement{}, fmt.Errorf("update %s: %w", b.entity.Table, ErrNoKey)
	}

	var (
		sets []string
		bind []string
	)
	for _, c := range b.entity.Columns {
		if c.Key || !c.Updatable {
			continue
		}
		bind = append(bind, c.Name)
		sets = append(sets, b.dialect.Quote(c.Name)+" = "+b.dialect.Placeholder(len(bind)))
	}
	if len(sets) == 0 {
		return Statement{}, fmt.Errorf("update %s: %w", b.entity.Table, ErrNothingToUpdate)
	}

	where, bind := b.keyPredicate(keys, bind)
	text := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		b.dialect.QuoteTable(b.entity.Table),
		strings.Join(sets, ", "),
		where)
	return Statement{Text: text, Columns: bind}, nil
}

// Delete renders DELETE matched by key.
func (b *Builder) Delete() (Statement, error) {
	keys := b.entity.Keys()
	if len(keys) == 0 {
		return Statement{}, fmt.Errorf("delete from %s: %w", b.entity.Table, ErrNoKey)
	}
	where, bind := b.keyPredicate(keys, nil)
	text := fmt.Sprintf("DELETE FROM %s WHERE %s", b.dialect.QuoteTable(b.entity.Table), where)
	return Statement{Text: text, Columns: bind}, nil
}

func (b *Builder) keyPredicate(keys []mapping.Column, bind []string) (string, []string) {
	parts := make([]string, len(keys))
	for i, k := range keys {
		bind = append(bind, k.Name)
		parts[i] = b.dialect.Quote(k.Name) + " = " + b.dialect.Placeholder(len(bind))
	}
	return strings.Join(parts, " AND "), bind
}

// Where appends predicate to statement as a WHERE clause. An empty or blank
// predicate leaves statement unchanged.
func Where(statement, predicate string) string {
	predicate = strings.TrimSpace(predicate)
	if predicate == "" {
		return statement
	}
	return statement + " WHERE " + predicate
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
