// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// An Error reports a malformed escape sequence in the input to Unquote.
type Error struct {
	Pos     int // offset of the backslash that begins the escape
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (offset %d)", e.Message, e.Pos) }

// Unquote decodes a byte slice containing the JSON encoding of a string and
// appends the result to dst. The input must have the enclosing double
// quotation marks already removed.
//
// The escapes \" \\ \/ \b \f \n \r \t and \uXXXX are recognized; any other
// escape is an error. A \u escape for a high surrogate that is immediately
// followed by a \u escape for a low surrogate decodes as the single rune the
// pair denotes. An unpaired surrogate decodes as the Unicode replacement rune.
func Unquote(dst []byte, src mem.RO) ([]byte, error) {
	pos := 0
	for {
		i := mem.IndexByte(src.SliceFrom(pos), '\\')
		if i < 0 {
			return mem.Append(dst, src.SliceFrom(pos)), nil
		}
		dst = mem.Append(dst, src.Slice(pos, pos+i))
		pos += i

		if pos+1 >= src.Len() {
			return nil, &Error{Pos: pos, Message: "incomplete escape sequence"}
		}
		switch c := src.At(pos + 1); c {
		case '"', '\\', '/':
			dst = append(dst, c)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			r, ok := hexEscapeAt(src, pos)
			if !ok {
				return nil, &Error{Pos: pos, Message: "invalid Unicode escape"}
			}
			if utf16.IsSurrogate(r) {
				hi := r
				r = utf8.RuneError
				if lo, ok := hexEscapeAt(src, pos+6); ok {
					if c := utf16.DecodeRune(hi, lo); c != utf8.RuneError {
						r = c
						pos += 6
					}
				}
			}
			dst = utf8.AppendRune(dst, r)
			pos += 6
			continue
		default:
			return nil, &Error{Pos: pos, Message: fmt.Sprintf("invalid escape %q", c)}
		}
		pos += 2
	}
}

// hexEscapeAt reports the code unit denoted by a \uXXXX escape beginning at
// offset pos of src, and whether there is such an escape.
func hexEscapeAt(src mem.RO, pos int) (rune, bool) {
	if pos+6 > src.Len() || src.At(pos) != '\\' || src.At(pos+1) != 'u' {
		return 0, false
	}
	var v rune
	for i := pos + 2; i < pos+6; i++ {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
