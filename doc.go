// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jval implements a JSON value model with a decoder and a streaming
// encoder.
//
// # Decoding
//
// Decode and DecodeBytes parse a complete JSON text into a Value:
//
//	v, err := jval.Decode(`{"name": "x", "sizes": [1, 2, 3]}`)
//	if err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
//
// Whitespace is permitted between tokens. Any text other than whitespace after
// the value is an error. In case of error, the concrete type of the error is
// *jval.SyntaxError, which reports the offset and the line and column of the
// problem. Errors about numbers and object keys also wrap one of the sentinel
// errors (ErrNumberOutOfRange, ErrInvalidNumber, ErrInvalidKeyType), which
// may be checked with errors.Is.
//
// # Values
//
// A Value is an immutable JSON value of one of six kinds:
//
//	Kind        | Accessors
//	----------- | -----------------------------------------
//	NullKind    | (none)
//	BoolKind    | Bool
//	NumberKind  | Num
//	StringKind  | Str
//	ArrayKind   | Len, Index, Elements
//	ObjectKind  | Len, Find, Member, Members
//
// Objects keep their members in order. If a key occurs more than once, the
// member keeps the position of its first occurrence and the value of its
// last.
//
// A Number records the value of a JSON number at each native width, together
// with the narrowest integer and floating-point widths that hold it:
//
//	n := jval.MustDecode(`300`).Num()
//	n.MinInt()  // Uint16
//	n.Uint8()   // 44 (truncated)
//
// # Encoding
//
// An Encoder writes JSON text to an io.Writer. The caller drives the encoder
// with calls that mirror the structure of the output:
//
//	e := jval.NewEncoder(os.Stdout)
//	e.BeginObject()
//	e.WriteKey("sizes")
//	e.BeginArray()
//	e.WriteInt(1)
//	e.WriteInt(2)
//	e.EndArray()
//	e.EndObject()
//
// The encoder writes separators automatically, and reports ErrUnbalanced for
// a call that does not fit the open structure. Call InsertNewline to request a
// line break, indented one space per level, before the next token.
//
// A type that implements the Encodable interface can be written with
// Encoder.Encode or Marshal. Value implements Encodable.
package jval
