// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

// BitSeq is a boolean sequence stored packed, one bit per element.
// Individual elements live inside machine words and cannot be addressed by
// reference, which is why its binding materialises an addressable shadow
// sequence (see NewBoolSeq).
type BitSeq struct {
	words []uint64
	n     int
}

// NewBitSeq creates a BitSeq holding the given bits.
func NewBitSeq(bits ...bool) *BitSeq {
	b := &BitSeq{}
	for _, bit := range bits {
		b.Append(bit)
	}
	return b
}

// Len returns the number of bits in the sequence.
func (b *BitSeq) Len() int {
	return b.n
}

// Append adds a bit to the end of the sequence.
func (b *BitSeq) Append(v bool) {
	word, off := b.n/64, uint(b.n%64)
	if word == len(b.words) {
		b.words = append(b.words, 0)
	}
	if v {
		b.words[word] |= 1 << off
	}
	b.n++
}

// At returns the bit at index i. It panics if i is out of range.
func (b *BitSeq) At(i int) bool {
	if i < 0 || i >= b.n {
		panic("sqlbind: bit index out of range")
	}
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// Set assigns the bit at index i. It panics if i is out of range.
func (b *BitSeq) Set(i int, v bool) {
	if i < 0 || i >= b.n {
		panic("sqlbind: bit index out of range")
	}
	if v {
		b.words[i/64] |= 1 << uint(i%64)
	} else {
		b.words[i/64] &^= 1 << uint(i%64)
	}
}

// Bools returns the sequence unpacked into a bool slice.
func (b *BitSeq) Bools() []bool {
	out := make([]bool, b.n)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}
