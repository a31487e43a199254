// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbind

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/canonical/sqlbind/internal/binding"
	"github.com/canonical/sqlbind/internal/marshal"
)

// Core types re-exported from the binding package.
type (
	// Binding adapts a host value to one or more positional statement
	// parameters.
	Binding = binding.Binding
	// Binder is the per-driver sink bound values are transferred into.
	Binder = binding.Binder
	// Direction governs which way a bound value flows.
	Direction = binding.Direction
	// BitSeq is a packed boolean sequence.
	BitSeq = binding.BitSeq
	// NullValue is bound as a database NULL.
	NullValue = binding.NullValue
)

const (
	// DirIn values flow from the caller to the statement.
	DirIn = binding.In
	// DirOut values flow from the statement into caller storage.
	DirOut = binding.Out
	// DirInOut values flow both ways.
	DirInOut = binding.InOut
)

// Construction errors re-exported from the binding package.
var (
	ErrEmptyCollection = binding.ErrEmptyCollection
	ErrNilSource       = binding.ErrNilSource
	ErrDirection       = binding.ErrDirection
	ErrKeyType         = binding.ErrKeyType
)

// Null is a ready-made NullValue for use at call sites.
var Null = NullValue{}

// NewBitSeq creates a BitSeq holding the given bits.
func NewBitSeq(bits ...bool) *BitSeq {
	return binding.NewBitSeq(bits...)
}

// Set is an unordered collection of unique keys. Its binding traverses the
// keys in ascending order, one row per key.
type Set[K cmp.Ordered] map[K]struct{}

// MultiSet is an unordered collection of keys with multiplicities. Its
// binding traverses the keys in ascending order, repeating each key once
// per count, so duplicates are adjacent in the row stream.
type MultiSet[K cmp.Ordered] map[K]uint

// MultiMap associates each key with any number of values. Its binding
// traverses the keys in ascending order and supplies one row per value,
// values of the same key in slice order. Only the values are bound; keys
// are never sent.
type MultiMap[K cmp.Ordered, V any] map[K][]V

func (Set[K]) bindsAsSet()         {}
func (MultiSet[K]) bindsAsSet()    {}
func (MultiSet[K]) bindsMulti()    {}
func (MultiMap[K, V]) bindsMulti() {}

// newBinding selects the binding variant for val and constructs it. The
// variant is chosen from the value's shape: packed boolean sequences, sets
// and multisets, maps and multimaps, slices, and scalars each get their
// own variant. With copyVal false, val must be a pointer to caller
// storage.
func newBinding(val any, copyVal bool, name string, dir Direction) (Binding, error) {
	if val == nil {
		return nil, fmt.Errorf("cannot bind untyped nil")
	}
	if bs, ok := val.(*BitSeq); ok {
		return binding.NewBoolSeq(bs, name, dir)
	}

	t := reflect.TypeOf(val)
	elem := t
	if t.Kind() == reflect.Pointer {
		elem = t.Elem()
	}
	_, isSet := val.(interface{ bindsAsSet() })
	_, isMulti := val.(interface{ bindsMulti() })

	switch {
	case isSet:
		m, err := marshal.ForType(elem.Key())
		if err != nil {
			return nil, err
		}
		return binding.NewSet(val, copyVal, isMulti, m, name, dir)
	case elem.Kind() == reflect.Map && elem.Elem() == reflect.TypeOf(struct{}{}):
		// map[K]struct{} is the conventional set shape.
		m, err := marshal.ForType(elem.Key())
		if err != nil {
			return nil, err
		}
		return binding.NewSet(val, copyVal, false, m, name, dir)
	case elem.Kind() == reflect.Map:
		value := elem.Elem()
		if isMulti {
			value = value.Elem()
		}
		m, err := marshal.ForType(value)
		if err != nil {
			return nil, err
		}
		return binding.NewMap(val, copyVal, isMulti, m, name, dir)
	case elem.Kind() == reflect.Slice && elem.Elem().Kind() != reflect.Uint8:
		// A byte slice is a single blob value, not a sequence of rows.
		m, err := marshal.ForType(elem.Elem())
		if err != nil {
			return nil, err
		}
		return binding.NewSequence(val, copyVal, m, name, dir)
	default:
		m, err := marshal.ForType(elem)
		if err != nil {
			return nil, err
		}
		return binding.NewScalar(val, copyVal, m, name, dir)
	}
}

func optionalName(name []string) string {
	if len(name) > 0 {
		return name[0]
	}
	return ""
}

// Use creates an input binding that borrows caller storage: val must be a
// pointer, and the storage it points to must stay valid until execution
// completes. Mutations made before a row is bound are reflected in it.
func Use(val any, name ...string) (Binding, error) {
	return newBinding(val, false, optionalName(name), DirIn)
}

// In is Use under its traditional name.
func In(val any, name ...string) (Binding, error) {
	return newBinding(val, false, optionalName(name), DirIn)
}

// Out creates an output binding. val must be a pointer; the driver writes
// results back into the storage it points to, so it must stay valid
// through result read-back.
func Out(val any) (Binding, error) {
	return newBinding(val, false, "", DirOut)
}

// IO creates an input-output binding over borrowed caller storage.
func IO(val any) (Binding, error) {
	return newBinding(val, false, "", DirInOut)
}

// Bind creates an input binding holding a private deep copy of val. It is
// the only safe choice for temporaries, literals and constants that cannot
// be referenced; later mutation of the caller's value does not change what
// is bound.
func Bind(val any, name ...string) (Binding, error) {
	return newBinding(val, true, optionalName(name), DirIn)
}

// BindLiteral creates the string-literal binding: the text is copied at
// construction and bound as input. A nil src is a construction error.
func BindLiteral(src *string, name ...string) (Binding, error) {
	return binding.NewLiteral(src, optionalName(name), DirIn)
}

// BindAll passes through an already-assembled parameter list unchanged,
// for call sites that pre-build their bindings.
func BindAll(bindings ...Binding) []Binding {
	return bindings
}

// Must panics if the factory call paired with it returned an error:
//
//	stmt := sqlbind.MustPrepare(q, sqlbind.Must(sqlbind.Use(&id)))
func Must(b Binding, err error) Binding {
	if err != nil {
		panic(err)
	}
	return b
}
