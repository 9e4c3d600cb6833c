// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

// DefaultEncoderDepth is the nesting capacity of an Encoder constructed by
// NewEncoder.
const DefaultEncoderDepth = 20

// An Encodable value knows how to write itself to an Encoder.
type Encodable interface {
	EncodeJSON(*Encoder) error
}

// Marshal returns the compact JSON encoding of v. It reports an error if v
// leaves an array or object open.
func Marshal(v Encodable) ([]byte, error) {
	depth := DefaultEncoderDepth
	if jv, ok := v.(Value); ok {
		depth = max(depth, jv.Depth())
	}
	var buf bytes.Buffer
	e := NewEncoderSize(&buf, depth)
	if err := e.Encode(v); err != nil {
		return nil, err
	} else if e.Depth() != 0 {
		return nil, fmt.Errorf("%d unclosed values: %w", e.Depth(), ErrUnbalanced)
	}
	return buf.Bytes(), nil
}

// frame records the state of one open array or object.
type frame struct {
	isObject bool
	isEmpty  bool // the next child needs no leading separator
}

// An Encoder writes JSON text to an output stream. The caller drives the
// encoder by calling methods to begin and end arrays and objects, to write
// object keys, and to write scalar values; the encoder inserts separators and
// checks that the calls are correctly nested.
//
// An Encoder has a fixed nesting capacity chosen when it is constructed.
// Opening an array or object beyond that capacity reports ErrEncoderOverflow.
// A call that does not fit the current structure, such as EndArray while an
// object is open, reports ErrUnbalanced. Neither error writes any output or
// changes the state of the encoder.
//
// If writing to the output stream fails, the encoder records the error and
// returns it from every subsequent call.
//
// An Encoder is not safe for concurrent use by multiple goroutines.
type Encoder struct {
	w      io.Writer
	frames []frame // fixed capacity; frames[:top] are open
	top    int
	nl     bool   // a line break is pending
	buf    []byte // output for the current call
	err    error
}

// NewEncoder constructs an Encoder that writes to w with the default nesting
// capacity.
func NewEncoder(w io.Writer) *Encoder { return NewEncoderSize(w, DefaultEncoderDepth) }

// NewEncoderSize constructs an Encoder that writes to w and allows at most
// depth nested arrays and objects. If depth < 1, DefaultEncoderDepth is used.
func NewEncoderSize(w io.Writer, depth int) *Encoder {
	if depth < 1 {
		depth = DefaultEncoderDepth
	}
	return &Encoder{w: w, frames: make([]frame, depth), buf: make([]byte, 0, 64)}
}

// Depth reports the number of arrays and objects currently open.
func (e *Encoder) Depth() int { return e.top }

// BeginArray begins a new array.
func (e *Encoder) BeginArray() error { return e.begin(false, '[') }

// EndArray ends the innermost open value, which must be an array.
func (e *Encoder) EndArray() error { return e.end(false, ']') }

// BeginObject begins a new object.
func (e *Encoder) BeginObject() error { return e.begin(true, '{') }

// EndObject ends the innermost open value, which must be an object.
func (e *Encoder) EndObject() error { return e.end(true, '}') }

// WriteKey writes the key of an object member. The innermost open value must
// be an object. The next value written is the value of the member.
func (e *Encoder) WriteKey(key string) error {
	if e.err != nil {
		return e.err
	} else if e.top == 0 {
		return fmt.Errorf("key %q outside object: %w", key, ErrUnbalanced)
	} else if !e.frames[e.top-1].isObject {
		return fmt.Errorf("key %q inside array: %w", key, ErrUnbalanced)
	}
	e.separator()
	e.buf = escape.Quote(e.buf, mem.S(key))
	e.buf = append(e.buf, ':')
	e.frames[e.top-1].isEmpty = true
	return e.flush()
}

// WriteString writes a string value.
func (e *Encoder) WriteString(s string) error {
	if e.err != nil {
		return e.err
	}
	e.separator()
	e.buf = escape.Quote(e.buf, mem.S(s))
	return e.flush()
}

// WriteBool writes a Boolean value.
func (e *Encoder) WriteBool(b bool) error {
	if e.err != nil {
		return e.err
	}
	e.separator()
	e.buf = strconv.AppendBool(e.buf, b)
	return e.flush()
}

// WriteNull writes a null value.
func (e *Encoder) WriteNull() error {
	if e.err != nil {
		return e.err
	}
	e.separator()
	e.buf = append(e.buf, "null"...)
	return e.flush()
}

// WriteInt writes an integer value.
func (e *Encoder) WriteInt(v int64) error {
	if e.err != nil {
		return e.err
	}
	e.separator()
	e.buf = strconv.AppendInt(e.buf, v, 10)
	return e.flush()
}

// WriteUint writes a non-negative integer value.
func (e *Encoder) WriteUint(v uint64) error {
	if e.err != nil {
		return e.err
	}
	e.separator()
	e.buf = strconv.AppendUint(e.buf, v, 10)
	return e.flush()
}

// WriteFloat writes a floating-point value in its shortest form that decodes
// to the same float64. NaN and infinities have no JSON encoding and report
// ErrInvalidNumber.
func (e *Encoder) WriteFloat(f float64) error { return e.writeFloat(f, 64) }

// WriteFloat32 writes a floating-point value in its shortest form that
// decodes to the same float32.
func (e *Encoder) WriteFloat32(f float32) error { return e.writeFloat(float64(f), 32) }

func (e *Encoder) writeFloat(f float64, bits int) error {
	if e.err != nil {
		return e.err
	} else if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("cannot encode %v: %w", f, ErrInvalidNumber)
	}
	e.separator()
	e.buf = appendFloat(e.buf, f, bits)
	return e.flush()
}

// WriteNumber writes a number value: a fraction as a float64, and an integer
// as a signed or unsigned 64-bit value according to its sign.
func (e *Encoder) WriteNumber(n Number) error {
	switch {
	case n.frac:
		return e.WriteFloat(n.f64)
	case n.neg:
		return e.WriteInt(n.i64)
	default:
		return e.WriteUint(n.u64)
	}
}

// WriteValue writes v and all the values it contains. Object members are
// written in their stored order.
func (e *Encoder) WriteValue(v Value) error {
	switch v.kind {
	case NullKind:
		return e.WriteNull()
	case BoolKind:
		return e.WriteBool(v.b)
	case NumberKind:
		return e.WriteNumber(v.Num())
	case StringKind:
		return e.WriteString(v.s)
	case ArrayKind:
		if err := e.BeginArray(); err != nil {
			return err
		}
		for _, elt := range v.vs {
			if err := e.WriteValue(elt); err != nil {
				return err
			}
		}
		return e.EndArray()
	case ObjectKind:
		if err := e.BeginObject(); err != nil {
			return err
		}
		for _, m := range v.ms {
			if err := e.WriteKey(m.Key); err != nil {
				return err
			} else if err := e.WriteValue(m.Value); err != nil {
				return err
			}
		}
		return e.EndObject()
	default:
		return fmt.Errorf("unknown value kind %v", v.kind)
	}
}

// Encode writes v to e.
func (e *Encoder) Encode(v Encodable) error { return v.EncodeJSON(e) }

// InsertNewline requests a line break before the next token written. The
// break follows any separator the token needs, and is followed by one space
// for each open array or object.
func (e *Encoder) InsertNewline() { e.nl = true }

func (e *Encoder) begin(isObject bool, open byte) error {
	if e.err != nil {
		return e.err
	} else if e.top == len(e.frames) {
		return fmt.Errorf("nesting depth %d exceeds capacity: %w", e.top+1, ErrEncoderOverflow)
	}
	e.separator()
	e.frames[e.top] = frame{isObject: isObject, isEmpty: true}
	e.top++
	e.buf = append(e.buf, open)
	return e.flush()
}

func (e *Encoder) end(isObject bool, close byte) error {
	if e.err != nil {
		return e.err
	} else if e.top == 0 {
		return fmt.Errorf("%q with nothing open: %w", close, ErrUnbalanced)
	} else if e.frames[e.top-1].isObject != isObject {
		return fmt.Errorf("%q inside %s: %w", close, frameLabel(e.frames[e.top-1]), ErrUnbalanced)
	}
	e.top--
	e.newline()
	e.buf = append(e.buf, close)
	return e.flush()
}

func frameLabel(f frame) string {
	if f.isObject {
		return "object"
	}
	return "array"
}

// separator emits a comma if the innermost open value already has a child,
// and then any pending line break. At the top level no comma is written.
func (e *Encoder) separator() {
	if e.top != 0 {
		f := &e.frames[e.top-1]
		if !f.isEmpty {
			e.buf = append(e.buf, ',')
		}
		f.isEmpty = false
	}
	e.newline()
}

func (e *Encoder) newline() {
	if e.nl {
		e.nl = false
		e.buf = append(e.buf, '\n')
		for range e.top {
			e.buf = append(e.buf, ' ')
		}
	}
}

func (e *Encoder) flush() error {
	_, err := e.w.Write(e.buf)
	e.buf = e.buf[:0]
	if err != nil {
		e.err = err
	}
	return err
}
