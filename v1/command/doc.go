// Package command renders SELECT, INSERT, UPDATE and DELETE text for a mapped
// entity. Identifier quoting and placeholder syntax come from a Dialect, which
// is the only engine-specific input.
//
//	b := command.NewBuilder(command.Postgres, entity)
//	b.Select("")           // SELECT "Id", "Name" FROM "Orders"
//	stmt, _ := b.Update() // UPDATE "Orders" SET "Name" = $1 WHERE "Id" = $2
//
// Predicates are caller-supplied text in the engine's own syntax and are
// appended unmodified.
package command
