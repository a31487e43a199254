// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package binding

// Direction governs whether a statement consumes a bound value, produces
// it, or both.
type Direction int

const (
	// In values flow from the caller to the statement.
	In Direction = iota
	// Out values flow from the statement back into caller storage.
	Out
	// InOut values flow both ways.
	InOut
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	}
	return "unknown"
}

// HasIn reports whether the direction carries an input component.
func (d Direction) HasIn() bool {
	return d == In || d == InOut
}

// HasOut reports whether the direction carries an output component.
func (d Direction) HasOut() bool {
	return d == Out || d == InOut
}
