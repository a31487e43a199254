// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package marshal

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/canonical/sqlbind/internal/binding"
)

// structMarshaller transfers a struct with "db"-tagged fields, one column
// per tagged field. Columns are laid out in ascending tag order so the
// layout is deterministic regardless of field declaration order.
type structMarshaller struct {
	structType reflect.Type
	fields     []structField
	width      int
}

// structField is one tagged field together with its marshaller and its
// column offset within the struct's span.
type structField struct {
	index  int
	tag    string
	offset int
	m      binding.Marshaller
}

func newStructMarshaller(t reflect.Type) (binding.Marshaller, error) {
	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		// Fields without a "db" tag do not map to columns.
		tag := f.Tag.Get("db")
		if tag == "" {
			continue
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("field %q of struct %s not exported", f.Name, t.Name())
		}
		tag, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("cannot parse tag for field %s.%s: %s", t.Name(), f.Name, err)
		}
		fm, err := ForType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %s", t.Name(), f.Name, err)
		}
		fields = append(fields, structField{index: i, tag: tag, m: fm})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf(`no "db" tags found in struct %q`, t.Name())
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].tag < fields[j].tag })
	width := 0
	for i := range fields {
		fields[i].offset = width
		width += fields[i].m.Width()
	}
	return &structMarshaller{structType: t, fields: fields, width: width}, nil
}

func (sm *structMarshaller) Width() int {
	return sm.width
}

func (sm *structMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	for _, f := range sm.fields {
		if err := f.m.MarshalRow(pos+f.offset, v.Field(f.index), b, dir); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the column names one value of t spans, in layout order.
// It is used by the owning statement for layout planning and diagnostics.
func Columns(t reflect.Type) ([]string, error) {
	m, err := ForType(t)
	if err != nil {
		return nil, err
	}
	sm, ok := m.(*structMarshaller)
	if !ok {
		return []string{""}, nil
	}
	cols := make([]string, 0, len(sm.fields))
	for _, f := range sm.fields {
		cols = append(cols, f.tag)
	}
	return cols, nil
}

var validColNameRx = regexp.MustCompile(`^([a-zA-Z_])+([a-zA-Z_0-9])*$`)

// parseTag parses a "db" struct tag and returns the column name.
func parseTag(tag string) (string, error) {
	options := strings.Split(tag, ",")
	if len(options) > 1 {
		return "", fmt.Errorf("unsupported flag %q in tag %q", options[1], tag)
	}
	name := options[0]
	if len(name) == 0 {
		return "", fmt.Errorf("empty db tag")
	}
	if !validColNameRx.MatchString(name) {
		return "", fmt.Errorf("invalid column name in 'db' tag: %q", name)
	}
	return name, nil
}
