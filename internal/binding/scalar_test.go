package binding

import (
	. "gopkg.in/check.v1"
)

func (*bindingSuite) TestScalarBindOnce(c *C) {
	v := 42
	b, err := NewScalar(&v, false, testMarshaller{}, "", In)
	c.Assert(err, IsNil)
	c.Assert(b.NumColumns(), Equals, 1)
	c.Assert(b.NumRows(), Equals, 1)

	tb := newTestBinder()
	b.SetBinder(tb)

	c.Assert(b.CanBind(), Equals, true)
	c.Assert(b.Bind(0), IsNil)
	c.Assert(b.CanBind(), Equals, false)
	c.Assert(tb.values, DeepEquals, []any{int64(42)})
}

func (*bindingSuite) TestScalarResetRestoresCanBind(c *C) {
	v := 7
	b, err := NewScalar(&v, false, testMarshaller{}, "", In)
	c.Assert(err, IsNil)
	tb := newTestBinder()
	b.SetBinder(tb)

	c.Assert(b.Bind(0), IsNil)
	c.Assert(b.CanBind(), Equals, false)

	b.Reset()
	c.Assert(b.CanBind(), Equals, true)
	// Reset forwards a forget to the binder so stale state cannot leak
	// into the next execution.
	c.Assert(tb.forgets, Equals, 1)

	c.Assert(b.Bind(0), IsNil)
	c.Assert(tb.values, DeepEquals, []any{int64(7)})
}

func (*bindingSuite) TestScalarBorrowedSeesMutation(c *C) {
	v := 1
	b, err := NewScalar(&v, false, testMarshaller{}, "", In)
	c.Assert(err, IsNil)
	tb := newTestBinder()
	b.SetBinder(tb)

	v = 99
	c.Assert(b.Bind(0), IsNil)
	c.Assert(tb.values, DeepEquals, []any{int64(99)})
}

func (*bindingSuite) TestScalarCopyIgnoresMutation(c *C) {
	v := 1
	b, err := NewScalar(&v, true, testMarshaller{}, "", In)
	c.Assert(err, IsNil)
	tb := newTestBinder()
	b.SetBinder(tb)

	v = 99
	c.Assert(b.Bind(0), IsNil)
	c.Assert(tb.values, DeepEquals, []any{int64(1)})
}

func (*bindingSuite) TestScalarOutRegistersTarget(c *C) {
	v := 0
	b, err := NewScalar(&v, false, testMarshaller{}, "", Out)
	c.Assert(err, IsNil)
	tb := newTestBinder()
	b.SetBinder(tb)

	c.Assert(b.Bind(3), IsNil)
	dest, ok := tb.outs[3].(*int)
	c.Assert(ok, Equals, true)
	c.Assert(dest, Equals, &v)
	// No input transfer for a pure output binding.
	c.Assert(tb.values, HasLen, 0)
}

func (*bindingSuite) TestScalarInOutTransfersAndRegisters(c *C) {
	v := 5
	b, err := NewScalar(&v, false, testMarshaller{}, "", InOut)
	c.Assert(err, IsNil)
	tb := newTestBinder()
	b.SetBinder(tb)

	c.Assert(b.Bind(0), IsNil)
	c.Assert(tb.values, DeepEquals, []any{int64(5)})
	c.Assert(tb.outs[0], Equals, &v)
}

func (*bindingSuite) TestScalarBindWithoutBinderPanics(c *C) {
	v := 1
	b, err := NewScalar(&v, false, testMarshaller{}, "", In)
	c.Assert(err, IsNil)
	c.Assert(func() { b.Bind(0) }, PanicMatches, "sqlbind: no binder attached.*")
}

func (*bindingSuite) TestScalarDoubleBindPanics(c *C) {
	v := 1
	b, err := NewScalar(&v, false, testMarshaller{}, "", In)
	c.Assert(err, IsNil)
	b.SetBinder(newTestBinder())
	c.Assert(b.Bind(0), IsNil)
	c.Assert(func() { b.Bind(0) }, PanicMatches, "sqlbind: scalar already bound")
}

func (*bindingSuite) TestScalarNilPointer(c *C) {
	_, err := NewScalar((*int)(nil), false, testMarshaller{}, "", In)
	c.Assert(err, ErrorMatches, "cannot borrow a nil pointer")
}

func (*bindingSuite) TestScalarName(c *C) {
	v := 1
	b, err := NewScalar(&v, false, testMarshaller{}, "age", In)
	c.Assert(err, IsNil)
	c.Assert(b.Name(), Equals, "age")
	c.Assert(b.Direction(), Equals, In)
}
