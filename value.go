// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import (
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// Kind reports the shape of a Value.
type Kind int

const (
	// KindNil is the kind of an absent or nil value.
	KindNil Kind = iota

	// KindScalar is the kind of strings, numbers, booleans and any
	// other leaf value.
	KindScalar

	// KindList is the kind of sequence values.
	KindList

	// KindMap is the kind of nested mappings.
	KindMap
)

// Value is a tagged view over a single node of the config tree. The zero
// Value represents an absent key: it does not exist, its kind is KindNil
// and every typed getter returns its zero value.
type Value struct {
	v  any
	ok bool
}

// ValueOf wraps an arbitrary value after normalizing it the same way
// source values are normalized.
func ValueOf(v any) Value {
	return Value{v: normalize(v), ok: true}
}

// Exists reports whether the value was actually present in the store.
func (v Value) Exists() bool {
	return v.ok
}

// Kind returns the shape of the underlying value.
func (v Value) Kind() Kind {
	if !v.ok || v.v == nil {
		return KindNil
	}
	switch v.v.(type) {
	case map[string]any:
		return KindMap
	case []any:
		return KindList
	default:
		return KindScalar
	}
}

// Raw returns the underlying value: a map[string]any, a []any, or a scalar.
func (v Value) Raw() any {
	return v.v
}

// Map returns the underlying mapping, or nil if the value is not a mapping.
func (v Value) Map() map[string]any {
	m, _ := v.v.(map[string]any)
	return m
}

// Slice returns the underlying sequence element-wise wrapped as Values.
// It returns nil if the value is not a sequence.
func (v Value) Slice() []Value {
	l, ok := v.v.([]any)
	if !ok {
		return nil
	}
	vs := make([]Value, len(l))
	for i, e := range l {
		vs[i] = Value{v: e, ok: true}
	}
	return vs
}

// String returns the value coerced to a string.
func (v Value) String() string {
	return cast.ToString(v.v)
}

// Int returns the value coerced to an int.
func (v Value) Int() int {
	return cast.ToInt(v.v)
}

// Int64 returns the value coerced to an int64.
func (v Value) Int64() int64 {
	return cast.ToInt64(v.v)
}

// Float64 returns the value coerced to a float64.
func (v Value) Float64() float64 {
	return cast.ToFloat64(v.v)
}

// Bool returns the value coerced to a bool.
func (v Value) Bool() bool {
	return cast.ToBool(v.v)
}

// Duration returns the value coerced to a time.Duration.
func (v Value) Duration() time.Duration {
	return cast.ToDuration(v.v)
}

// StringSlice returns the value coerced to a []string.
func (v Value) StringSlice() []string {
	return cast.ToStringSlice(v.v)
}

// normalize recursively converts every nested mapping into a
// map[string]any with stringified keys and every sequence into a []any.
// Scalars, byte slices and times pass through unchanged.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = normalize(e)
		}
		return m
	case []any:
		l := make([]any, len(x))
		for i, e := range x {
			l[i] = normalize(e)
		}
		return l
	case []byte, time.Time, nil:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[cast.ToString(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return m
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		l := make([]any, rv.Len())
		for i := range rv.Len() {
			l[i] = normalize(rv.Index(i).Interface())
		}
		return l
	default:
		return v
	}
}

// deepCopy copies an already normalized value tree.
func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = deepCopy(e)
		}
		return m
	case []any:
		l := make([]any, len(x))
		for i, e := range x {
			l[i] = deepCopy(e)
		}
		return l
	default:
		return v
	}
}
