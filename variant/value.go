/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package variant

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase kind name, as used in error details.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

var (
	// ErrKindMismatch matches every *KindError.
	ErrKindMismatch = errors.New("variant: kind mismatch")
	// ErrIndexOutOfRange is returned by Index for a bad position.
	ErrIndexOutOfRange = errors.New("variant: index out of range")
)

// KindError reports an accessor used on a value of another kind.
type KindError struct {
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("variant: want %s, got %s", e.Want, e.Got)
}

// Is makes errors.Is(err, ErrKindMismatch) true.
func (e *KindError) Is(target error) bool { return target == ErrKindMismatch }

// Value is one variant value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps n. Every runtime number is a float64, integers included.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a copy of elems.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(elems)}
}

// Object wraps a copy of fields. A nil map yields an empty object.
func Object(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	maps.Copy(m, fields)
	return Value{kind: KindObject, obj: m}
}

// Kind returns the concrete kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Len returns the number of elements of an array or keys of an object, and
// 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &KindError{Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, &KindError{Want: KindNumber, Got: v.kind}
	}
	return v.n, nil
}

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &KindError{Want: KindString, Got: v.kind}
	}
	return v.s, nil
}

// AsArray returns a copy of the elements held by v.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, &KindError{Want: KindArray, Got: v.kind}
	}
	return slices.Clone(v.arr), nil
}

// AsObject returns a copy of the fields held by v.
func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != KindObject {
		return nil, &KindError{Want: KindObject, Got: v.kind}
	}
	m := make(map[string]Value, len(v.obj))
	maps.Copy(m, v.obj)
	return m, nil
}

// Index returns element i of an array.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindArray {
		return Value{}, &KindError{Want: KindArray, Got: v.kind}
	}
	if i < 0 || i >= len(v.arr) {
		return Value{}, fmt.Errorf("index %d of %d: %w", i, len(v.arr), ErrIndexOutOfRange)
	}
	return v.arr[i], nil
}

// Lookup returns the field key of an object. ok is false when v is not an
// object or has no such key; a present null field returns (Null(), true).
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.obj[key]
	return f, ok
}

// Equal reports deep equality. Numbers compare with ==, so NaN is never
// equal to itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindArray:
		return slices.EqualFunc(v.arr, o.arr, Value.Equal)
	case KindObject:
		return maps.EqualFunc(v.obj, o.obj, Value.Equal)
	default:
		return false
	}
}
