// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbind

import (
	"fmt"
	"time"
)

// paramsBinder is the binder sink used by Statement. It accumulates bound
// values by column position into the positional argument list handed to
// database/sql. Values persist across bind-loop steps until Forget, so a
// binding whose rows are exhausted keeps serving its last bound values.
type paramsBinder struct {
	params map[int]any
	outs   map[int]any
}

func newParamsBinder() *paramsBinder {
	return &paramsBinder{
		params: make(map[int]any),
		outs:   make(map[int]any),
	}
}

func (pb *paramsBinder) set(pos int, v any) error {
	if pos < 0 {
		return fmt.Errorf("cannot bind to negative column %d", pos)
	}
	pb.params[pos] = v
	return nil
}

func (pb *paramsBinder) BindBool(pos int, v bool) error     { return pb.set(pos, v) }
func (pb *paramsBinder) BindInt(pos int, v int64) error     { return pb.set(pos, v) }
func (pb *paramsBinder) BindUint(pos int, v uint64) error   { return pb.set(pos, v) }
func (pb *paramsBinder) BindFloat(pos int, v float64) error { return pb.set(pos, v) }
func (pb *paramsBinder) BindString(pos int, v string) error { return pb.set(pos, v) }
func (pb *paramsBinder) BindBytes(pos int, v []byte) error  { return pb.set(pos, v) }
func (pb *paramsBinder) BindNull(pos int) error             { return pb.set(pos, nil) }

func (pb *paramsBinder) BindTime(pos int, v time.Time) error {
	return pb.set(pos, v)
}

// BindOut records dest as the write-back target for an output column.
// database/sql has no output parameter support, so targets are only
// surfaced as an error if the statement is executed with them.
func (pb *paramsBinder) BindOut(pos int, dest any) error {
	if pos < 0 {
		return fmt.Errorf("cannot bind to negative column %d", pos)
	}
	pb.outs[pos] = dest
	return nil
}

// Forget clears all bound state so the statement can be re-executed with
// fresh values.
func (pb *paramsBinder) Forget() {
	pb.params = make(map[int]any)
	pb.outs = make(map[int]any)
}

// args assembles the positional argument list for one execution. Every one
// of the n columns must have a bound input value.
func (pb *paramsBinder) args(n int) ([]any, error) {
	out := make([]any, n)
	for pos := 0; pos < n; pos++ {
		v, ok := pb.params[pos]
		if !ok {
			if _, isOut := pb.outs[pos]; isOut {
				return nil, fmt.Errorf("cannot execute: column %d is an output parameter, not supported by database/sql", pos)
			}
			return nil, fmt.Errorf("cannot execute: no value bound for column %d", pos)
		}
		out[pos] = v
	}
	return out, nil
}
