// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jval"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path(v jval.Value, path ...any) (jval.Value, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return jval.Value{}, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a jval.Value.
type Cursor struct {
	org jval.Value
	stk []jval.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin jval.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() jval.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() jval.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []jval.Value {
	return append([]jval.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are strings (object keys), integers
// (offsets into arrays or objects), or functions. If the path cannot be
// completely consumed, traversal stops at the last value reached and an error
// is recorded. Use Err to recover the error.
//
// A string element requires an object, and resolves to the value of the
// member with that key.
//
// An integer element requires an array or object, and resolves to the element
// or member value at that offset. Negative offsets count backward from the
// end (-1 is last). Object members are counted in their stored order.
//
// A function element must have the signature
//
//	func(jval.Value) (jval.Value, error)
//
// Its result becomes the next value. If it reports an error, traversal stops
// and the error is recorded.
//
// A nil element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.Kind() != jval.ObjectKind {
				return c.setErrorf("cannot traverse %v with %q", cur.Kind(), t)
			}
			v, ok := cur.Find(t)
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(v)

		case int:
			switch cur.Kind() {
			case jval.ArrayKind:
				i, ok := fixBound(cur.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", i, cur.Len())
				}
				cur = c.push(cur.Index(i))
			case jval.ObjectKind:
				i, ok := fixBound(cur.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", i, cur.Len())
				}
				cur = c.push(cur.Member(i).Value)
			default:
				return c.setErrorf("cannot traverse %v with %d", cur.Kind(), t)
			}

		case func(jval.Value) (jval.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// skip

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v jval.Value) jval.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
