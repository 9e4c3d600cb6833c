// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"

	"go4.org/mem"
)

// escapes maps each character that has a two-character escape to that
// sequence. All other entries are empty.
var escapes = [...]string{
	'"':  `\"`,
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

const hexDigit = "0123456789ABCDEF"

// Lookup reports the two-character escape sequence for r, if it has one.
func Lookup(r rune) (string, bool) {
	if r >= 0 && int(r) < len(escapes) && escapes[r] != "" {
		return escapes[r], true
	}
	return "", false
}

// Quote appends the JSON encoding of src to dst, including the enclosing
// double quotation marks, and returns the extended slice.
//
// Characters with a two-character escape use it. Other characters outside
// the range 0x20..0x7F are written as \uXXXX with uppercase hex digits, and
// characters outside the Basic Multilingual Plane are written as a UTF-16
// surrogate pair. Invalid UTF-8 is written as \uFFFD.
func Quote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if esc, ok := Lookup(r); ok {
			dst = append(dst, esc...)
		} else if r >= ' ' && r <= 0x7f {
			dst = append(dst, byte(r))
		} else if r > 0xffff {
			hi, lo := utf16.EncodeRune(r)
			dst = appendHex4(appendHex4(dst, hi), lo)
		} else {
			dst = appendHex4(dst, r)
		}
	}
	return append(dst, '"')
}

func appendHex4(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigit[r>>12&15], hexDigit[r>>8&15], hexDigit[r>>4&15], hexDigit[r&15])
}
