// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import (
	"fmt"
	"reflect"

	"github.com/qdm12/reprint"
)

// storage resolves the value a binding operates on. It is one of exactly
// two shapes: borrowed caller storage reached through a pointer, or a
// private snapshot owned by the binding. Every access goes through value()
// so that a binding can never hold a stale reference into storage whose
// ownership was decided by a flag at construction.
type storage interface {
	// value returns the current value. For borrowed storage this reads
	// through the caller's pointer, so caller mutations are visible; for
	// owned storage it is the snapshot taken at construction.
	value() reflect.Value
}

// borrowed references caller-owned storage. The caller must keep the
// storage valid from attachment through the end of execution and, for
// output directions, through result read-back.
type borrowed struct {
	ptr reflect.Value
}

func (b borrowed) value() reflect.Value {
	return b.ptr.Elem()
}

// owned holds a private deep snapshot taken at construction. The caller's
// value and the snapshot are independent from that point on.
type owned struct {
	snap reflect.Value
}

func (o owned) value() reflect.Value {
	return o.snap
}

// borrow wraps a non-nil pointer to caller storage.
func borrow(ptr any) (storage, error) {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("cannot borrow %s, need a pointer", pv.Kind())
	}
	if pv.IsNil() {
		return nil, fmt.Errorf("cannot borrow a nil pointer")
	}
	return borrowed{ptr: pv}, nil
}

// snapshot deep-copies val into owned storage. A shallow copy is not
// enough: slices and maps would still alias the caller's backing storage.
func snapshot(val any) storage {
	return owned{snap: reflect.ValueOf(reprint.This(val))}
}

// makeStorage builds the storage for a binding. With copyVal set a private
// deep snapshot is taken, dereferencing val first if it is a pointer;
// otherwise val must be a pointer to caller storage which is borrowed.
func makeStorage(val any, copyVal bool) (storage, error) {
	if !copyVal {
		return borrow(val)
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot copy through a nil pointer")
		}
		val = rv.Elem().Interface()
	}
	return snapshot(val), nil
}
