// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

// scalar binds a single host value to one row of columns. It supports all
// three directions and either ownership mode.
type scalar struct {
	base
	store storage
	m     Marshaller
	bound bool
}

// NewScalar creates a scalar binding over val. With copyVal set a private
// snapshot is taken; otherwise val must be a pointer to caller storage,
// which is borrowed for the duration of execution.
func NewScalar(val any, copyVal bool, m Marshaller, name string, dir Direction) (Binding, error) {
	store, err := makeStorage(val, copyVal)
	if err != nil {
		return nil, err
	}
	return &scalar{
		base:  base{name: name, dir: dir},
		store: store,
		m:     m,
	}, nil
}

func (s *scalar) NumColumns() int {
	return s.m.Width()
}

func (s *scalar) NumRows() int {
	return 1
}

func (s *scalar) CanBind() bool {
	return !s.bound
}

func (s *scalar) Bind(pos int) error {
	binder := s.mustBinder()
	if !s.CanBind() {
		panic("sqlbind: scalar already bound")
	}
	if err := s.m.MarshalRow(pos, s.store.value(), binder, s.dir); err != nil {
		return err
	}
	s.bound = true
	return nil
}

// Reset clears the bound flag and instructs the binder to forget state
// bound so far, enabling safe re-execution.
func (s *scalar) Reset() {
	s.bound = false
	s.mustBinder().Forget()
}
