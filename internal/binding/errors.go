// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

import (
	"errors"
	"fmt"
)

// Construction errors. A binding is either fully valid or never observable:
// all of these surface synchronously from the constructor, before any Bind
// call is possible.
var (
	// ErrEmptyCollection is returned when an empty collection is bound in
	// the input direction.
	ErrEmptyCollection = errors.New("cannot bind an empty collection as input")
	// ErrNilSource is returned when the string-literal binding is given a
	// nil source.
	ErrNilSource = errors.New("cannot bind a nil string source")
	// ErrDirection is returned when a binding is constructed with a
	// direction it does not support.
	ErrDirection = errors.New("direction not supported by this binding")
	// ErrKeyType is returned when a set or map binding is constructed over
	// keys that have no deterministic order.
	ErrKeyType = errors.New("key type has no deterministic order")
)

func emptyCollectionError(what string) error {
	return fmt.Errorf("%s: %w", what, ErrEmptyCollection)
}

func directionError(what string, dir Direction) error {
	return fmt.Errorf("%s: %q: %w", what, dir, ErrDirection)
}
