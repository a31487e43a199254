// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import (
	"reflect"
	"time"
)

// Binder is the per-driver sink that bound values are transferred into. It
// is addressed by column position. Forget clears any state bound so far,
// allowing a statement to be executed again with fresh values.
//
// A Binder is attached to a Binding by the owning statement after
// construction. Bindings never own the Binder and never release it.
type Binder interface {
	BindBool(pos int, v bool) error
	BindInt(pos int, v int64) error
	BindUint(pos int, v uint64) error
	BindFloat(pos int, v float64) error
	BindString(pos int, v string) error
	BindBytes(pos int, v []byte) error
	BindTime(pos int, v time.Time) error
	BindNull(pos int) error
	// BindOut registers dest, a pointer into caller storage, as the
	// write-back target for an output column.
	BindOut(pos int, dest any) error
	Forget()
}

// Marshaller knows how to transfer one logical value of a given element
// type into a Binder. A single logical value may span several columns.
type Marshaller interface {
	// Width returns the number of columns one logical value occupies.
	Width() int
	// MarshalRow transfers one value into the binder starting at column
	// pos, honouring the binding direction.
	MarshalRow(pos int, v reflect.Value, b Binder, dir Direction) error
}

// Binding adapts a host value to one or more positional statement
// parameters. A scalar supplies a single row; collections supply one row
// per element or entry, consumed by successive Bind calls.
//
// Bindings are not safe for concurrent use. The owning statement must
// serialise all operations against its parameter set.
type Binding interface {
	// Name returns the optional parameter name. Empty means positional.
	Name() string
	// Direction returns the direction the value flows in.
	Direction() Direction
	// SetBinder attaches the binder sink. It is supplied by the owning
	// statement after registration; the binding never owns it.
	SetBinder(Binder)
	// NumColumns returns the number of columns one row of this binding
	// occupies.
	NumColumns() int
	// NumRows returns the total number of logical rows this binding
	// supplies.
	NumRows() int
	// CanBind reports whether unconsumed rows remain.
	CanBind() bool
	// Bind transfers the current row starting at column pos and advances
	// to the next row. Calling Bind with no binder attached, or when
	// CanBind is false, is a programming defect and panics.
	Bind(pos int) error
	// Reset rewinds the binding to its first row so the statement can be
	// executed again.
	Reset()
}

// NullValue is bound as a database NULL. It stands in for a value of any
// column type when no value is available.
type NullValue struct{}

// base carries the attributes shared by every binding variant.
type base struct {
	name   string
	dir    Direction
	binder Binder
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Direction() Direction {
	return b.dir
}

func (b *base) SetBinder(binder Binder) {
	b.binder = binder
}

// mustBinder returns the attached binder. Operating on a binding before
// the owning statement has attached a binder is a defect.
func (b *base) mustBinder() Binder {
	if b.binder == nil {
		panic("sqlbind: no binder attached to binding")
	}
	return b.binder
}
