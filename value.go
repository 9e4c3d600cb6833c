// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"bytes"
	"fmt"
	"slices"

	"go4.org/mem"
)

// Kind is the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "boolean",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// A Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string
	n    *Number
	vs   []Value
	ms   []Member
	pos  map[string]int // key → offset in ms, for large objects
}

// A Member is a single key-value pair belonging to an object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Int returns an integer number value.
func Int(v int64) Value { return numberValue(intNumber(v)) }

// Uint returns a non-negative integer number value.
func Uint(v uint64) Value { return numberValue(uintNumber(v)) }

// Float returns a fractional number value. The result is not encodable if f
// is NaN or infinite.
func Float(f float64) Value { return numberValue(floatNumber(f)) }

func numberValue(n Number) Value { return Value{kind: NumberKind, n: &n} }

// Array returns an array value containing a copy of vs.
func Array(vs ...Value) Value { return Value{kind: ArrayKind, vs: slices.Clone(vs)} }

// Object returns an object value with the given members. If a key occurs
// more than once, the member keeps the position of the first occurrence and
// the value of the last.
func Object(ms ...Member) Value {
	var set memberSet
	for _, m := range ms {
		set.add(m.Key, m.Value)
	}
	return set.value()
}

// MakeNumber constructs a number from the integer, fraction, and exponent
// parts of a JSON number literal, for example "-12", ".5", and "e+3". The
// fraction includes its leading dot and the exponent its leading "e" or "E";
// either or both may be empty. If both are empty, the number is integral.
func MakeNumber(integer, frac, exp string) (Value, error) {
	text := integer + frac + exp
	src := mem.S(text)
	intEnd, fracEnd, end, ok := scanNumber(src, 0)
	if !ok || intEnd != len(integer) || fracEnd != len(integer)+len(frac) || end != len(text) {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}
	n, err := parseNumber(src, intEnd == end)
	if err != nil {
		return Value{}, err
	}
	return numberValue(n), nil
}

// ParseNumber parses text as a complete JSON number literal.
func ParseNumber(text string) (Value, error) {
	src := mem.S(text)
	intEnd, _, end, ok := scanNumber(src, 0)
	if !ok || end != src.Len() {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}
	n, err := parseNumber(src, intEnd == end)
	if err != nil {
		return Value{}, err
	}
	return numberValue(n), nil
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Str returns the contents of a string value, or "" for other kinds.
func (v Value) Str() string { return v.s }

// Bool reports the contents of a Boolean value, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Num returns the contents of a number value, or the number 0 for other
// kinds.
func (v Value) Num() Number {
	if v.n == nil {
		return uintNumber(0)
	}
	return *v.n
}

// Len reports the number of elements of an array or members of an object.
// It returns 0 for other kinds.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.vs)
	case ObjectKind:
		return len(v.ms)
	}
	return 0
}

// Index returns the element at offset i of an array. It panics if v is not
// an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != ArrayKind {
		panic(fmt.Sprintf("jval: Index of %v value", v.kind))
	}
	return v.vs[i]
}

// Find returns the value of the member of an object with the given key, and
// reports whether it was found. It returns false if v is not an object.
func (v Value) Find(key string) (Value, bool) {
	if v.pos != nil {
		if i, ok := v.pos[key]; ok {
			return v.ms[i].Value, true
		}
		return Value{}, false
	}
	for _, m := range v.ms {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Member returns the member at offset i of an object, in stored order. It
// panics if v is not an object or i is out of range.
func (v Value) Member(i int) Member {
	if v.kind != ObjectKind {
		panic(fmt.Sprintf("jval: Member of %v value", v.kind))
	}
	return v.ms[i]
}

// Elements returns a copy of the elements of an array, or nil.
func (v Value) Elements() []Value { return slices.Clone(v.vs) }

// Members returns a copy of the members of an object in stored order, or nil.
func (v Value) Members() []Member { return slices.Clone(v.ms) }

// Depth reports the nesting depth of v: 0 for a scalar, and one more than the
// deepest element or member for an array or object.
func (v Value) Depth() int {
	var d int
	switch v.kind {
	case ArrayKind:
		for _, e := range v.vs {
			d = max(d, e.Depth())
		}
	case ObjectKind:
		for _, m := range v.ms {
			d = max(d, m.Value.Depth())
		}
	default:
		return 0
	}
	return d + 1
}

// Equal reports whether v and w are structurally equal. Objects are equal if
// they have the same keys with equal values, in any order. Numbers are equal
// if they denote the same value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == w.b
	case StringKind:
		return v.s == w.s
	case NumberKind:
		return v.Num().equal(w.Num())
	case ArrayKind:
		return slices.EqualFunc(v.vs, w.vs, Value.Equal)
	case ObjectKind:
		if len(v.ms) != len(w.ms) {
			return false
		}
		for _, m := range v.ms {
			if o, ok := w.Find(m.Key); !ok || !m.Value.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// EncodeJSON satisfies the Encodable interface by writing v to e.
func (v Value) EncodeJSON(e *Encoder) error { return e.WriteValue(v) }

// JSON returns the compact JSON encoding of v. It panics if v contains a
// number that has no JSON encoding; use Marshal to receive an error instead.
func (v Value) JSON() string {
	var buf bytes.Buffer
	if err := NewEncoderSize(&buf, v.Depth()).WriteValue(v); err != nil {
		panic(err)
	}
	return buf.String()
}

func (v Value) String() string { return v.JSON() }

// A memberSet accumulates the members of an object, replacing the value of a
// member whose key is added again.
type memberSet struct {
	ms  []Member
	pos map[string]int // key → offset in ms; built once ms is large
}

// memberIndexMin is the member count at which a memberSet switches from
// linear search to an index.
const memberIndexMin = 16

func (s *memberSet) add(key string, v Value) {
	if i, ok := s.find(key); ok {
		s.ms[i].Value = v
		return
	}
	s.ms = append(s.ms, Member{Key: key, Value: v})
	if s.pos != nil {
		s.pos[key] = len(s.ms) - 1
	} else if len(s.ms) >= memberIndexMin {
		s.pos = make(map[string]int, 2*len(s.ms))
		for i, m := range s.ms {
			s.pos[m.Key] = i
		}
	}
}

func (s *memberSet) find(key string) (int, bool) {
	if s.pos != nil {
		i, ok := s.pos[key]
		return i, ok
	}
	for i, m := range s.ms {
		if m.Key == key {
			return i, true
		}
	}
	return -1, false
}

// value returns an object holding the members of s. The set must not be
// modified afterward, since the object shares its index.
func (s *memberSet) value() Value { return Value{kind: ObjectKind, ms: s.ms, pos: s.pos} }
