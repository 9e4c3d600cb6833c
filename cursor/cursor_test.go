// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/cursor"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestCursor(t *testing.T) {
	v := jval.MustDecode(testJSON)
	list, _ := v.Find("list")
	o, _ := v.Find("o")
	xyz, _ := v.Find("xyz")
	d, _ := xyz.Find("d")

	tests := []struct {
		name string
		path []any
		want jval.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"ObjectIndex", []any{1}, mustFind(v, "y"), false},
		{"WrongType", []any{"o", "x"}, o, true},

		{"ArrayPos", []any{"list", 1}, list.Index(1), false},
		{"ArrayNeg", []any{"list", -1}, list.Index(1), false},
		{"ArrayRange", []any{"o", 25}, o, true},
		{"ObjPath", []any{"xyz", "d"}, d, false},
		{"DeepPath", []any{"list", 0, "x"}, jval.Int(1), false},
		{"NilElement", []any{"y", nil, "hello"}, jval.String("there"), false},

		{"FuncArray", []any{"o", testPathFunc}, jval.Int(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, jval.Int(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, d, true},
		{"BadElement", []any{"list", 1.5}, list, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %v, want error", tc.path, c.Value())
			}
			if got := c.Value(); !got.Equal(tc.want) {
				t.Errorf("Down %+v: got %v, want %v", tc.path, got, tc.want)
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	v := jval.MustDecode(`{"a": [10, {"b": null}]}`)
	c := cursor.New(v)
	if !c.AtOrigin() {
		t.Error("New cursor is not at its origin")
	}

	c.Down("a", -1, "b")
	if err := c.Err(); err != nil {
		t.Fatalf("Down: unexpected error: %v", err)
	}
	if got := c.Value(); got.Kind() != jval.NullKind {
		t.Errorf("Value: got %v, want null", got)
	}
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path: got %d values, want 4", got)
	}

	if got := c.Up().Up().Value(); got.JSON() != `[10,{"b":null}]` {
		t.Errorf("Up: got %v, want the array", got)
	}
	if got := c.Down(0).Value(); !got.Equal(jval.Int(10)) {
		t.Errorf("Down(0): got %v, want 10", got)
	}

	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down(nonesuch): got nil error")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, err %v", c.AtOrigin(), c.Err())
	}
	if !c.Origin().Equal(v) || !c.Value().Equal(v) {
		t.Errorf("Reset: cursor value %v, want %v", c.Value(), v)
	}
}

func TestPath(t *testing.T) {
	v := jval.MustDecode(`{"p": {"q": ["r", "s"]}}`)
	if got, err := cursor.Path(v, "p", "q", 1); err != nil {
		t.Errorf("Path: unexpected error: %v", err)
	} else if got.Str() != "s" {
		t.Errorf("Path: got %v, want \"s\"", got)
	}
	if got, err := cursor.Path(v, "p", "x"); err == nil {
		t.Errorf("Path: got %v, want error", got)
	}
}

func mustFind(v jval.Value, key string) jval.Value {
	w, ok := v.Find(key)
	if !ok {
		panic("missing key " + key)
	}
	return w
}

func testPathFunc(v jval.Value) (jval.Value, error) {
	switch v.Kind() {
	case jval.ArrayKind, jval.ObjectKind:
		return jval.Int(int64(v.Len())), nil
	default:
		return jval.Value{}, errors.New("not a thing with length")
	}
}
