/*
Package sqlbind maps Go values onto the positional parameters of a SQL
statement.

A binding adapts one host value to one or more statement parameters, under
an explicit direction (input, output, or both). Scalars supply a single
row; slices, sets and maps supply one row per element or entry, so a
single statement can consume many logical rows from one parameter list.
The binding either borrows the caller's storage or takes a private
snapshot, chosen at the call site.

# Basics

Bindings are created with the factory helpers and registered on a
statement:

	id := 42
	names := []string{"Fred", "Mark", "Mary"}

	stmt, err := sqlbind.Prepare(
		"INSERT INTO person (group_id, name) VALUES (?, ?)",
		sqlbind.Must(sqlbind.Use(&id)),
		sqlbind.Must(sqlbind.Use(&names)),
	)
	...
	outcome, err := stmt.Exec(ctx, db)

The statement executes once per logical row: three times here, with the
scalar id bound once and reused for every row. Calling [Statement.Reset]
rewinds all bindings so the same parameter list can drive another batch.

[Use] and [In] borrow the caller's storage, which must stay valid until
execution completes. [Bind] takes a deep copy and is the only safe choice
for temporaries and constants. [Out] and [IO] borrow storage for the
driver to write results back into. Collections bound as input must not be
empty; this is reported at construction, never deferred to execution.

# Columns

A logical value normally occupies one column. Structs with `db` tags span
one column per tagged field, in ascending tag order:

	type Person struct {
		Name string `db:"name"`
		ID   int    `db:"id"`
	}

Custom column marshalling for driver-specific types can be installed with
the marshaller registry.
*/
package sqlbind
