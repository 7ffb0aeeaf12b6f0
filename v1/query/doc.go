// Package query provides reusable typed query objects.
//
// An Executor is created once and executed many times, each time with an
// optional predicate and arguments:
//
//	q, err := query.New[Order](conn)
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	all, err := q.Execute(ctx, "")
//	one, err := q.Execute(ctx, `"Id" = $1`, 1)
//	all, err = q.Execute(ctx, "") // no WHERE clause left over
//
// NewCustom starts from any statement text instead of the mapped table:
//
//	q, err := query.NewCustom[Order](conn, `SELECT "Id", "Name" FROM "Orders"`)
//
// The unfiltered base statement is prepared on first use when the connector
// supports it; Close releases it. After Close, Execute returns ErrClosed.
//
// Every execution runs in an OpenTelemetry span and, when configured, is
// reported to an observability.Observer.
package query
