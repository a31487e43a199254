// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import (
	"fmt"
	"reflect"
)

// set binds the keys of a set or multiset, in ascending key order. The key
// order is captured at construction and again on Reset, matching the
// traversal a fresh iteration of the container would produce.
type set struct {
	base
	store  storage
	m      Marshaller
	multi  bool
	rows   []reflect.Value
	cursor int
}

// NewSet creates a binding over a set (multi false) or multiset (multi
// true). Binding an empty collection as input is a construction error.
func NewSet(val any, copyVal, multi bool, m Marshaller, name string, dir Direction) (Binding, error) {
	store, err := makeStorage(val, copyVal)
	if err != nil {
		return nil, err
	}
	if k := store.value().Kind(); k != reflect.Map {
		return nil, fmt.Errorf("cannot bind %s as a set", k)
	}
	s := &set{
		base:  base{name: name, dir: dir},
		store: store,
		m:     m,
		multi: multi,
	}
	if err := s.capture(); err != nil {
		return nil, err
	}
	if dir == In && s.NumRows() == 0 {
		return nil, emptyCollectionError("set")
	}
	return s, nil
}

// capture snapshots the ascending key traversal, expanding multiset keys
// by their multiplicity.
func (s *set) capture() error {
	mv := s.store.value()
	keys, err := sortedKeys(mv)
	if err != nil {
		return err
	}
	s.rows = s.rows[:0]
	for _, key := range keys {
		n := 1
		if s.multi {
			n = int(mv.MapIndex(key).Uint())
		}
		for i := 0; i < n; i++ {
			s.rows = append(s.rows, key)
		}
	}
	return nil
}

func (s *set) NumColumns() int {
	return s.m.Width()
}

func (s *set) NumRows() int {
	mv := s.store.value()
	if !s.multi {
		return mv.Len()
	}
	n := 0
	iter := mv.MapRange()
	for iter.Next() {
		n += int(iter.Value().Uint())
	}
	return n
}

func (s *set) CanBind() bool {
	return s.cursor < len(s.rows)
}

func (s *set) Bind(pos int) error {
	binder := s.mustBinder()
	if !s.CanBind() {
		panic("sqlbind: set rows exhausted")
	}
	if err := s.m.MarshalRow(pos, s.rows[s.cursor], binder, s.dir); err != nil {
		return err
	}
	s.cursor++
	return nil
}

func (s *set) Reset() {
	s.cursor = 0
	// The key kind was validated at construction, so recapturing the
	// traversal cannot fail.
	_ = s.capture()
}
