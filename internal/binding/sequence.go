// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import (
	"fmt"
	"reflect"
)

// sequence binds an ordered sequence of values, one row per element. The
// cursor steps through the elements on successive Bind calls. Borrowed
// sequences read elements through the caller's slice at bind time, so
// element mutations made before a given Bind call are reflected in it.
type sequence struct {
	base
	store  storage
	m      Marshaller
	cursor int
}

// NewSequence creates a binding over a slice. Binding an empty slice as
// input is a construction error.
func NewSequence(val any, copyVal bool, m Marshaller, name string, dir Direction) (Binding, error) {
	store, err := makeStorage(val, copyVal)
	if err != nil {
		return nil, err
	}
	if k := store.value().Kind(); k != reflect.Slice {
		return nil, fmt.Errorf("cannot bind %s as a sequence", k)
	}
	s := &sequence{
		base:  base{name: name, dir: dir},
		store: store,
		m:     m,
	}
	if dir == In && s.NumRows() == 0 {
		return nil, emptyCollectionError("sequence")
	}
	return s, nil
}

func (s *sequence) NumColumns() int {
	return s.m.Width()
}

func (s *sequence) NumRows() int {
	return s.store.value().Len()
}

func (s *sequence) CanBind() bool {
	return s.cursor < s.store.value().Len()
}

func (s *sequence) Bind(pos int) error {
	binder := s.mustBinder()
	if !s.CanBind() {
		panic("sqlbind: sequence rows exhausted")
	}
	elem := s.store.value().Index(s.cursor)
	if err := s.m.MarshalRow(pos, elem, binder, s.dir); err != nil {
		return err
	}
	s.cursor++
	return nil
}

func (s *sequence) Reset() {
	s.cursor = 0
}
