// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbind

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrExhausted is returned by [Statement.Exec] when every binding has
// already consumed its rows. Call [Statement.Reset] to execute again.
var ErrExhausted = errors.New("all rows consumed")

// Execer runs a SQL statement. Both [sql.DB] and [sql.Tx] satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Statement owns a parameter list: it registers bindings, plans the column
// layout from their widths, attaches the binder, and drives the bind loop
// that services one row per collection element on each execution step.
//
// A Statement is not safe for concurrent use.
type Statement struct {
	query    string
	bindings []Binding
	offsets  []int
	columns  int
	binder   *paramsBinder
}

// Prepare builds a Statement from a query and its bindings. Column offsets
// are assigned in registration order, each binding spanning NumColumns
// columns, and the total must match the query's placeholder count.
func Prepare(query string, bindings ...Binding) (*Statement, error) {
	s := &Statement{
		query:    query,
		bindings: bindings,
		offsets:  make([]int, len(bindings)),
		binder:   newParamsBinder(),
	}
	for i, b := range bindings {
		s.offsets[i] = s.columns
		s.columns += b.NumColumns()
	}
	if n := strings.Count(query, "?"); n != s.columns {
		return nil, fmt.Errorf("cannot prepare: query has %d placeholders but bindings span %d columns", n, s.columns)
	}
	for _, b := range bindings {
		b.SetBinder(s.binder)
	}
	return s, nil
}

// MustPrepare is the same as [Prepare] except that it panics on error.
func MustPrepare(query string, bindings ...Binding) *Statement {
	s, err := Prepare(query, bindings...)
	if err != nil {
		panic(err)
	}
	return s
}

// NumColumns returns the total number of columns the parameter list spans.
func (s *Statement) NumColumns() int {
	return s.columns
}

// NumRows returns the number of logical rows the statement will consume in
// one batch: the largest row count over all bindings.
func (s *Statement) NumRows() int {
	rows := 0
	for _, b := range s.bindings {
		if n := b.NumRows(); n > rows {
			rows = n
		}
	}
	return rows
}

func (s *Statement) canBind() bool {
	for _, b := range s.bindings {
		if b.CanBind() {
			return true
		}
	}
	return false
}

// Exec runs the statement on db, once per logical row. On each step every
// binding with rows remaining binds its current row; bindings already
// exhausted keep their previously bound values, so a scalar bound on the
// first step services every row of the batch.
//
// Output-direction bindings cannot be executed through database/sql; they
// are usable with custom binder sinks only.
func (s *Statement) Exec(ctx context.Context, db Execer) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var outcome Outcome

	if len(s.bindings) == 0 {
		res, err := db.ExecContext(ctx, s.query)
		if err != nil {
			return outcome, err
		}
		outcome.add(res)
		return outcome, nil
	}

	if !s.canBind() {
		return outcome, fmt.Errorf("cannot execute: %w", ErrExhausted)
	}
	for s.canBind() {
		for i, b := range s.bindings {
			if !b.CanBind() {
				continue
			}
			if err := b.Bind(s.offsets[i]); err != nil {
				return outcome, err
			}
		}
		args, err := s.binder.args(s.columns)
		if err != nil {
			return outcome, err
		}
		res, err := db.ExecContext(ctx, s.query, args...)
		if err != nil {
			return outcome, err
		}
		outcome.add(res)
	}
	return outcome, nil
}

// Reset rewinds every binding to its first row and clears bound state, so
// the same parameter list can drive another batch execution.
func (s *Statement) Reset() {
	s.binder.Forget()
	for _, b := range s.bindings {
		b.Reset()
	}
}

// Outcome holds metadata about a batch execution.
type Outcome struct {
	rowsAffected int64
	lastInsertID int64
	executions   int
}

func (o *Outcome) add(res sql.Result) {
	o.executions++
	if n, err := res.RowsAffected(); err == nil {
		o.rowsAffected += n
	}
	if id, err := res.LastInsertId(); err == nil {
		o.lastInsertID = id
	}
}

// RowsAffected returns the total rows affected across the batch.
func (o Outcome) RowsAffected() int64 {
	return o.rowsAffected
}

// LastInsertID returns the insert ID reported by the final execution.
func (o Outcome) LastInsertID() int64 {
	return o.lastInsertID
}

// Executions returns how many times the statement was executed, one per
// logical row.
func (o Outcome) Executions() int {
	return o.executions
}
