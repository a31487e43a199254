package sqlbind_test

import (
	"errors"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbind"
)

func (*PackageSuite) TestUseSelectsScalar(c *C) {
	v := 42
	b, err := sqlbind.Use(&v)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 1)
	c.Assert(b.NumColumns(), Equals, 1)
	c.Assert(b.Direction(), Equals, sqlbind.DirIn)
}

func (*PackageSuite) TestUseSelectsSequence(c *C) {
	vals := []int{10, 20, 30}
	b, err := sqlbind.Use(&vals)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 3)
	c.Assert(b.NumColumns(), Equals, 1)
}

func (*PackageSuite) TestByteSliceIsScalarBlob(c *C) {
	blob := []byte{1, 2, 3}
	b, err := sqlbind.Use(&blob)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 1)
}

func (*PackageSuite) TestUseSelectsMap(c *C) {
	vals := map[int]string{1: "a", 2: "b"}
	b, err := sqlbind.Use(&vals)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 2)
}

func (*PackageSuite) TestUseSelectsSet(c *C) {
	vals := sqlbind.Set[string]{"a": {}, "b": {}}
	b, err := sqlbind.Use(&vals)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 2)

	// The conventional map[K]struct{} shape is a set too.
	plain := map[string]struct{}{"a": {}}
	b, err = sqlbind.Use(&plain)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 1)
}

func (*PackageSuite) TestUseSelectsMultiSet(c *C) {
	vals := sqlbind.MultiSet[string]{"a": 2, "b": 1}
	b, err := sqlbind.Use(&vals)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 3)
}

func (*PackageSuite) TestUseSelectsMultiMap(c *C) {
	vals := sqlbind.MultiMap[string, int]{"a": {1, 2}, "b": {3}}
	b, err := sqlbind.Use(&vals)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 3)
}

func (*PackageSuite) TestUseSelectsBoolSequence(c *C) {
	bits := sqlbind.NewBitSeq(true, false)
	b, err := sqlbind.Use(bits)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 2)

	_, err = sqlbind.Out(bits)
	c.Assert(errors.Is(err, sqlbind.ErrDirection), Equals, true)
}

func (*PackageSuite) TestEmptyCollectionsRejected(c *C) {
	var seq []int
	_, err := sqlbind.Use(&seq)
	c.Assert(errors.Is(err, sqlbind.ErrEmptyCollection), Equals, true)

	set := sqlbind.Set[int]{}
	_, err = sqlbind.Use(&set)
	c.Assert(errors.Is(err, sqlbind.ErrEmptyCollection), Equals, true)

	ms := sqlbind.MultiSet[int]{}
	_, err = sqlbind.In(&ms)
	c.Assert(errors.Is(err, sqlbind.ErrEmptyCollection), Equals, true)

	m := map[int]string{}
	_, err = sqlbind.Use(&m)
	c.Assert(errors.Is(err, sqlbind.ErrEmptyCollection), Equals, true)

	mm := sqlbind.MultiMap[int, string]{}
	_, err = sqlbind.Use(&mm)
	c.Assert(errors.Is(err, sqlbind.ErrEmptyCollection), Equals, true)
}

func (*PackageSuite) TestUntypedNilRejected(c *C) {
	_, err := sqlbind.Use(nil)
	c.Assert(err, ErrorMatches, "cannot bind untyped nil")
}

func (*PackageSuite) TestBindCopiesValue(c *C) {
	// Bind accepts a temporary by value; no pointer needed.
	b, err := sqlbind.Bind(42)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 1)

	vals := []int{1, 2}
	b, err = sqlbind.Bind(vals)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 2)
}

func (*PackageSuite) TestBindLiteral(c *C) {
	s := "hello"
	b, err := sqlbind.BindLiteral(&s, "greeting")
	c.Assert(err, IsNil)
	c.Assert(b.Name(), Equals, "greeting")
	c.Assert(b.NumRows(), Equals, 1)

	_, err = sqlbind.BindLiteral(nil)
	c.Assert(errors.Is(err, sqlbind.ErrNilSource), Equals, true)
}

func (*PackageSuite) TestOutAndIODirections(c *C) {
	v := 0
	b, err := sqlbind.Out(&v)
	c.Assert(err, IsNil)
	c.Assert(b.Direction(), Equals, sqlbind.DirOut)

	b, err = sqlbind.IO(&v)
	c.Assert(err, IsNil)
	c.Assert(b.Direction(), Equals, sqlbind.DirInOut)
}

func (*PackageSuite) TestNamedBindings(c *C) {
	v := 1
	b, err := sqlbind.Use(&v, "id")
	c.Assert(err, IsNil)
	c.Assert(b.Name(), Equals, "id")

	b, err = sqlbind.Use(&v)
	c.Assert(err, IsNil)
	c.Assert(b.Name(), Equals, "")
}

func (*PackageSuite) TestBindAllPassthrough(c *C) {
	v := 1
	w := "x"
	b1 := sqlbind.Must(sqlbind.Use(&v))
	b2 := sqlbind.Must(sqlbind.Use(&w))
	all := sqlbind.BindAll(b1, b2)
	c.Assert(all, HasLen, 2)
	c.Assert(all[0], Equals, b1)
	c.Assert(all[1], Equals, b2)
}

func (*PackageSuite) TestMustPanics(c *C) {
	var seq []int
	c.Assert(func() { sqlbind.Must(sqlbind.Use(&seq)) }, PanicMatches, ".*cannot bind an empty collection as input")
}

func (*PackageSuite) TestNullScalar(c *C) {
	b, err := sqlbind.Bind(sqlbind.Null)
	c.Assert(err, IsNil)
	c.Assert(b.NumRows(), Equals, 1)
}
