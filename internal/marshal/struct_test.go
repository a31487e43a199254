package marshal

import (
	"reflect"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbind/internal/binding"
)

type person struct {
	Name    string `db:"name"`
	ID      int    `db:"id"`
	Ignored string
}

func (*marshalSuite) TestStructWidthAndLayout(c *C) {
	m, err := ForType(reflect.TypeOf(person{}))
	c.Assert(err, IsNil)
	c.Assert(m.Width(), Equals, 2)

	cols, err := Columns(reflect.TypeOf(person{}))
	c.Assert(err, IsNil)
	// Columns are laid out in ascending tag order.
	c.Assert(cols, DeepEquals, []string{"id", "name"})
}

func (*marshalSuite) TestStructMarshalRow(c *C) {
	m, err := ForType(reflect.TypeOf(person{}))
	c.Assert(err, IsNil)

	rb := newRecordingBinder()
	p := person{Name: "Fred", ID: 30}
	err = m.MarshalRow(4, reflect.ValueOf(p), rb, binding.In)
	c.Assert(err, IsNil)
	c.Assert(rb.byPos[4], Equals, int64(30))
	c.Assert(rb.byPos[5], Equals, "Fred")
}

func (*marshalSuite) TestStructNoTags(c *C) {
	type bare struct{ X int }
	_, err := ForType(reflect.TypeOf(bare{}))
	c.Assert(err, ErrorMatches, `no "db" tags found in struct "bare"`)
}

func (*marshalSuite) TestStructUnexportedTaggedField(c *C) {
	type hidden struct {
		value int `db:"value"`
	}
	_, err := ForType(reflect.TypeOf(hidden{}))
	c.Assert(err, ErrorMatches, `field "value" of struct hidden not exported`)
}

func (*marshalSuite) TestStructBadTag(c *C) {
	type bad struct {
		X int `db:"1col"`
	}
	_, err := ForType(reflect.TypeOf(bad{}))
	c.Assert(err, ErrorMatches, `cannot parse tag for field bad.X: invalid column name in 'db' tag: "1col"`)
}

func (*marshalSuite) TestColumnsForScalar(c *C) {
	cols, err := Columns(reflect.TypeOf(42))
	c.Assert(err, IsNil)
	c.Assert(cols, DeepEquals, []string{""})
}
