// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"

	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

// MaxDecodeDepth is the maximum nesting depth of arrays and objects accepted
// by the decoder.
const MaxDecodeDepth = 10000

// Decode decodes a single JSON value from text. Insignificant whitespace is
// permitted before and after each token; any other text following the value
// is an error. In case of error, the concrete type of the error is
// [*SyntaxError].
func Decode(text string) (Value, error) { return decode(mem.S(text)) }

// DecodeBytes decodes a single JSON value from data, as Decode does.
func DecodeBytes(data []byte) (Value, error) { return decode(mem.B(data)) }

// MustDecode decodes text as Decode does, but panics on error.
func MustDecode(text string) Value {
	v, err := Decode(text)
	if err != nil {
		panic(fmt.Sprintf("jval: decoding %q: %v", text, err))
	}
	return v
}

// A decoder is a recursive-descent parser over a complete input text.
// Methods report errors by panicking with a *SyntaxError, which decode
// recovers.
type decoder struct {
	src   mem.RO
	pos   int
	depth int
	buf   []byte // scratch space for unescaping strings
}

func decode(src mem.RO) (v Value, err error) {
	d := &decoder{src: src}
	defer d.recoverSyntaxError(&v, &err)

	d.skipSpace()
	v = d.value()
	d.skipSpace()
	if d.pos < d.src.Len() {
		d.failf(d.pos, nil, "unexpected %s after value", d.describe())
	}
	return v, nil
}

func (d *decoder) recoverSyntaxError(vp *Value, errp *error) {
	if x := recover(); x != nil {
		serr, ok := x.(*SyntaxError)
		if !ok {
			panic(x)
		}
		*vp, *errp = Value{}, serr
	}
}

// value consumes a single value of any type.
// Precondition: d.pos is at a significant character or the end of input.
func (d *decoder) value() Value {
	if d.pos >= d.src.Len() {
		d.failf(d.pos, nil, "unexpected end of input")
	}
	switch c := d.src.At(d.pos); {
	case c == '"':
		return String(d.str())
	case c == '{':
		return d.object()
	case c == '[':
		return d.array()
	case c == 't':
		d.literal("true")
		return Bool(true)
	case c == 'f':
		d.literal("false")
		return Bool(false)
	case c == 'n':
		d.literal("null")
		return Null()
	case c == '-' || isDigit(c):
		return d.number()
	}
	d.failf(d.pos, nil, "unexpected %s", d.describe())
	panic("unreachable")
}

// array consumes an array and its elements.
// Precondition: d.pos is at "[".
func (d *decoder) array() Value {
	d.enter()
	d.pos++
	d.skipSpace()
	if d.peek() == ']' {
		d.pos++
		d.leave()
		return Array()
	}

	var vs []Value
	for {
		d.skipSpace()
		vs = append(vs, d.value())
		d.skipSpace()
		switch d.peek() {
		case ',':
			d.pos++
		case ']':
			d.pos++
			d.leave()
			return Value{kind: ArrayKind, vs: vs}
		default:
			d.failf(d.pos, nil, "expected \",\" or \"]\", got %s", d.describe())
		}
	}
}

// object consumes an object and its members.
// Precondition: d.pos is at "{".
func (d *decoder) object() Value {
	d.enter()
	d.pos++
	d.skipSpace()
	if d.peek() == '}' {
		d.pos++
		d.leave()
		return Object()
	}

	var set memberSet
	for {
		d.skipSpace()
		kpos := d.pos
		key := d.value()
		if key.kind != StringKind {
			d.failf(kpos, ErrInvalidKeyType, "object key must be a string, got %v", key.kind)
		}

		d.skipSpace()
		if d.peek() != ':' {
			d.failf(d.pos, nil, "expected \":\", got %s", d.describe())
		}
		d.pos++
		d.skipSpace()
		set.add(key.s, d.value())

		d.skipSpace()
		switch d.peek() {
		case ',':
			d.pos++
		case '}':
			d.pos++
			d.leave()
			return set.value()
		default:
			d.failf(d.pos, nil, "expected \",\" or \"}\", got %s", d.describe())
		}
	}
}

// str consumes a quoted string and returns its decoded contents.
// Precondition: d.pos is at the opening quotation mark.
func (d *decoder) str() string {
	start := d.pos
	i, plain := start+1, true
scan:
	for {
		if i >= d.src.Len() {
			d.failf(start, nil, "unterminated string")
		}
		switch c := d.src.At(i); {
		case c == '"':
			break scan
		case c == '\\':
			i += 2
			plain = false
		case c < ' ':
			d.failf(i, nil, "unescaped control %q in string", c)
		default:
			i++
		}
	}
	d.pos = i + 1

	body := d.src.Slice(start+1, i)
	if plain {
		return body.StringCopy()
	}
	dec, err := escape.Unquote(d.buf[:0], body)
	if err != nil {
		e := err.(*escape.Error)
		d.failf(start+1+e.Pos, nil, "%s", e.Message)
	}
	d.buf = dec
	return string(dec)
}

// number consumes a number.
// Precondition: d.pos is at "-" or a digit.
func (d *decoder) number() Value {
	start := d.pos
	intEnd, _, end, ok := scanNumber(d.src, start)
	if !ok {
		d.failf(start, ErrInvalidNumber, "invalid number")
	}
	n, err := parseNumber(d.src.Slice(start, end), intEnd == end)
	if err != nil {
		d.failf(start, err, "%v", err)
	}
	d.pos = end
	return numberValue(n)
}

// literal consumes the constant word, or fails.
func (d *decoder) literal(word string) {
	if !mem.HasPrefix(d.src.SliceFrom(d.pos), mem.S(word)) {
		d.failf(d.pos, nil, "invalid constant, want %q", word)
	}
	d.pos += len(word)
}

func (d *decoder) enter() {
	if d.depth++; d.depth > MaxDecodeDepth {
		d.failf(d.pos, nil, "nesting depth exceeds %d", MaxDecodeDepth)
	}
}

func (d *decoder) leave() { d.depth-- }

func (d *decoder) skipSpace() {
	for d.pos < d.src.Len() && isSpace(d.src.At(d.pos)) {
		d.pos++
	}
}

// peek returns the byte at the current position, or 0 at the end of input.
func (d *decoder) peek() byte {
	if d.pos < d.src.Len() {
		return d.src.At(d.pos)
	}
	return 0
}

// describe returns a human-readable description of the input at the current
// position, for error messages.
func (d *decoder) describe() string {
	if d.pos >= d.src.Len() {
		return "end of input"
	}
	r, _ := mem.DecodeRune(d.src.SliceFrom(d.pos))
	return fmt.Sprintf("%q", r)
}

func (d *decoder) failf(pos int, err error, msg string, args ...any) {
	panic(&SyntaxError{
		Offset:   pos,
		Location: lineColAt(d.src, pos),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}
