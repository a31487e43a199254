// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import "fmt"

// literal binds a string literal. The source text is always copied at
// construction, so temporaries and constants are safe to bind. The source
// is not writable, so only the input direction is accepted; requesting Out
// or InOut is a construction error rather than being silently downgraded.
type literal struct {
	base
	val   string
	bound bool
}

// NewLiteral creates a string-literal binding by copying *src. A nil src
// is a construction error.
func NewLiteral(src *string, name string, dir Direction) (Binding, error) {
	if src == nil {
		return nil, fmt.Errorf("string literal: %w", ErrNilSource)
	}
	if dir != In {
		return nil, directionError("string literal", dir)
	}
	return &literal{
		base: base{name: name, dir: dir},
		val:  *src,
	}, nil
}

func (l *literal) NumColumns() int {
	return 1
}

func (l *literal) NumRows() int {
	return 1
}

func (l *literal) CanBind() bool {
	return !l.bound
}

func (l *literal) Bind(pos int) error {
	binder := l.mustBinder()
	if !l.CanBind() {
		panic("sqlbind: literal already bound")
	}
	if err := binder.BindString(pos, l.val); err != nil {
		return err
	}
	l.bound = true
	return nil
}

func (l *literal) Reset() {
	l.bound = false
	l.mustBinder().Forget()
}
