// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import (
	"fmt"
	"reflect"
)

// mapping binds the values of a map or multimap, in ascending key order.
// Only the mapped value is transferred per row; the key is never sent.
// Borrowed mappings read the value through the caller's map at bind time.
type mapping struct {
	base
	store  storage
	m      Marshaller
	multi  bool
	keys   []reflect.Value
	idx    []int
	cursor int
}

// NewMap creates a binding over a map (multi false) or multimap (multi
// true). Binding an empty collection as input is a construction error.
func NewMap(val any, copyVal, multi bool, m Marshaller, name string, dir Direction) (Binding, error) {
	store, err := makeStorage(val, copyVal)
	if err != nil {
		return nil, err
	}
	if k := store.value().Kind(); k != reflect.Map {
		return nil, fmt.Errorf("cannot bind %s as a map", k)
	}
	mb := &mapping{
		base:  base{name: name, dir: dir},
		store: store,
		m:     m,
		multi: multi,
	}
	if err := mb.capture(); err != nil {
		return nil, err
	}
	if dir == In && mb.NumRows() == 0 {
		return nil, emptyCollectionError("map")
	}
	return mb, nil
}

// capture snapshots the ascending key traversal. For a multimap every key
// is expanded to one entry per value, recording the value's index.
func (mb *mapping) capture() error {
	mv := mb.store.value()
	keys, err := sortedKeys(mv)
	if err != nil {
		return err
	}
	mb.keys = mb.keys[:0]
	mb.idx = mb.idx[:0]
	for _, key := range keys {
		if !mb.multi {
			mb.keys = append(mb.keys, key)
			mb.idx = append(mb.idx, -1)
			continue
		}
		for i := 0; i < mv.MapIndex(key).Len(); i++ {
			mb.keys = append(mb.keys, key)
			mb.idx = append(mb.idx, i)
		}
	}
	return nil
}

func (mb *mapping) NumColumns() int {
	return mb.m.Width()
}

func (mb *mapping) NumRows() int {
	mv := mb.store.value()
	if !mb.multi {
		return mv.Len()
	}
	n := 0
	iter := mv.MapRange()
	for iter.Next() {
		n += iter.Value().Len()
	}
	return n
}

func (mb *mapping) CanBind() bool {
	return mb.cursor < len(mb.keys)
}

func (mb *mapping) Bind(pos int) error {
	binder := mb.mustBinder()
	if !mb.CanBind() {
		panic("sqlbind: map rows exhausted")
	}
	key := mb.keys[mb.cursor]
	val := mb.store.value().MapIndex(key)
	if !val.IsValid() {
		return fmt.Errorf("cannot bind: key %v removed from borrowed map", key)
	}
	if i := mb.idx[mb.cursor]; i >= 0 {
		if i >= val.Len() {
			return fmt.Errorf("cannot bind: values for key %v shrank in borrowed map", key)
		}
		val = val.Index(i)
	}
	if err := mb.m.MarshalRow(pos, val, binder, mb.dir); err != nil {
		return err
	}
	mb.cursor++
	return nil
}

func (mb *mapping) Reset() {
	mb.cursor = 0
	// Key kind was validated at construction; recapture cannot fail.
	_ = mb.capture()
}
