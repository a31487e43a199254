// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

// boolSeq binds a packed boolean sequence. The packed storage cannot hand
// out a reference per element, so the source is unpacked into an
// addressable shadow slice at construction time and rows are served from
// the shadow. Only the input direction is supported.
type boolSeq struct {
	base
	src    *BitSeq
	shadow []bool
	cursor int
}

// NewBoolSeq creates a binding over a packed boolean sequence. The source
// is borrowed; the shadow is private to the binding. Directions other than
// In, and an empty sequence, are construction errors.
func NewBoolSeq(src *BitSeq, name string, dir Direction) (Binding, error) {
	if dir != In {
		return nil, directionError("boolean sequence", dir)
	}
	if src == nil || src.Len() == 0 {
		return nil, emptyCollectionError("boolean sequence")
	}
	return &boolSeq{
		base:   base{name: name, dir: dir},
		src:    src,
		shadow: src.Bools(),
	}, nil
}

func (b *boolSeq) NumColumns() int {
	return 1
}

func (b *boolSeq) NumRows() int {
	return b.src.Len()
}

func (b *boolSeq) CanBind() bool {
	return b.cursor < len(b.shadow)
}

func (b *boolSeq) Bind(pos int) error {
	binder := b.mustBinder()
	if !b.CanBind() {
		panic("sqlbind: boolean sequence rows exhausted")
	}
	if err := binder.BindBool(pos, b.shadow[b.cursor]); err != nil {
		return err
	}
	b.cursor++
	return nil
}

func (b *boolSeq) Reset() {
	b.cursor = 0
}
