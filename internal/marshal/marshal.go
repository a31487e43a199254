// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package marshal implements column marshallers: the per-type collaborators
// that know how many columns one logical value occupies and how to transfer
// a single row of it into a binder sink.
package marshal

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/canonical/sqlbind/internal/binding"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	byteSliceType = reflect.TypeOf([]byte(nil))
	nullType      = reflect.TypeOf(binding.NullValue{})
)

// marshallerCache caches marshallers per element type across statements.
var marshallerCacheMutex sync.RWMutex
var marshallerCache = make(map[reflect.Type]binding.Marshaller)

// Register installs a custom marshaller for an element type, replacing the
// built-in handling. It is intended for driver-specific value types.
func Register(t reflect.Type, m binding.Marshaller) {
	marshallerCacheMutex.Lock()
	marshallerCache[t] = m
	marshallerCacheMutex.Unlock()
}

// ForType returns the marshaller for the given element type, generating
// and caching as required.
func ForType(t reflect.Type) (binding.Marshaller, error) {
	marshallerCacheMutex.RLock()
	m, found := marshallerCache[t]
	marshallerCacheMutex.RUnlock()
	if found {
		return m, nil
	}

	m, err := generate(t)
	if err != nil {
		return nil, err
	}

	marshallerCacheMutex.Lock()
	marshallerCache[t] = m
	marshallerCacheMutex.Unlock()

	return m, nil
}

// generate produces the marshaller for an element type.
func generate(t reflect.Type) (binding.Marshaller, error) {
	switch {
	case t == nullType:
		return nullMarshaller{}, nil
	case t == timeType:
		return timeMarshaller{}, nil
	case t == byteSliceType:
		return bytesMarshaller{}, nil
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return valueMarshaller{}, nil
	case reflect.Interface:
		return dynamicMarshaller{}, nil
	case reflect.Pointer:
		elem, err := ForType(t.Elem())
		if err != nil {
			return nil, err
		}
		return pointerMarshaller{elem: elem}, nil
	case reflect.Struct:
		return newStructMarshaller(t)
	default:
		return nil, fmt.Errorf("cannot marshal unsupported type %s", t)
	}
}

// bindOut registers v's address as a write-back target. It reports whether
// an input transfer is still needed for the direction.
func bindOut(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) (needIn bool, err error) {
	if !dir.HasOut() {
		return true, nil
	}
	if !v.CanAddr() {
		return false, fmt.Errorf("cannot bind output to unaddressable value")
	}
	if err := b.BindOut(pos, v.Addr().Interface()); err != nil {
		return false, err
	}
	return dir.HasIn(), nil
}

// valueMarshaller transfers a single basic value into one column.
type valueMarshaller struct{}

func (valueMarshaller) Width() int { return 1 }

func (valueMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	needIn, err := bindOut(pos, v, b, dir)
	if err != nil || !needIn {
		return err
	}
	switch v.Kind() {
	case reflect.Bool:
		return b.BindBool(pos, v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return b.BindInt(pos, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return b.BindUint(pos, v.Uint())
	case reflect.Float32, reflect.Float64:
		return b.BindFloat(pos, v.Float())
	case reflect.String:
		return b.BindString(pos, v.String())
	default:
		return fmt.Errorf("internal error: value marshaller used for %s", v.Kind())
	}
}

// timeMarshaller transfers a time.Time into one column.
type timeMarshaller struct{}

func (timeMarshaller) Width() int { return 1 }

func (timeMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	needIn, err := bindOut(pos, v, b, dir)
	if err != nil || !needIn {
		return err
	}
	return b.BindTime(pos, v.Interface().(time.Time))
}

// bytesMarshaller transfers a byte slice into one column as a blob.
type bytesMarshaller struct{}

func (bytesMarshaller) Width() int { return 1 }

func (bytesMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	needIn, err := bindOut(pos, v, b, dir)
	if err != nil || !needIn {
		return err
	}
	return b.BindBytes(pos, v.Bytes())
}

// nullMarshaller transfers a NULL into one column.
type nullMarshaller struct{}

func (nullMarshaller) Width() int { return 1 }

func (nullMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	if !dir.HasIn() {
		return fmt.Errorf("cannot bind null as output")
	}
	return b.BindNull(pos)
}

// pointerMarshaller transfers the pointed-to value, or NULL for nil.
type pointerMarshaller struct {
	elem binding.Marshaller
}

func (m pointerMarshaller) Width() int { return m.elem.Width() }

func (m pointerMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	if v.IsNil() {
		if !dir.HasIn() {
			return fmt.Errorf("cannot bind output through a nil pointer")
		}
		return b.BindNull(pos)
	}
	return m.elem.MarshalRow(pos, v.Elem(), b, dir)
}

// dynamicMarshaller handles interface elements, whose concrete type is
// only known at bind time. It always occupies a single column, so a
// dynamic value may not be a multi-column struct.
type dynamicMarshaller struct{}

func (dynamicMarshaller) Width() int { return 1 }

func (dynamicMarshaller) MarshalRow(pos int, v reflect.Value, b binding.Binder, dir binding.Direction) error {
	if v.IsNil() {
		if !dir.HasIn() {
			return fmt.Errorf("cannot bind output through a nil interface")
		}
		return b.BindNull(pos)
	}
	elem := v.Elem()
	m, err := ForType(elem.Type())
	if err != nil {
		return err
	}
	if m.Width() != 1 {
		return fmt.Errorf("cannot bind %s dynamically: value spans %d columns", elem.Type(), m.Width())
	}
	return m.MarshalRow(pos, elem, b, dir)
}
