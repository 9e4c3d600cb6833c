// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"strings"

	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

// Escape reports the two-character escape sequence for r, if it has one.
// The characters with such escapes are quotation mark, reverse solidus,
// backspace, form feed, line feed, carriage return, and horizontal tab.
func Escape(r rune) (string, bool) { return escape.Lookup(r) }

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	return string(escape.Quote(make([]byte, 0, len(src)+2), mem.S(src)))
}

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error for an invalid or incomplete escape sequence.
// An unpaired surrogate escape decodes as the Unicode replacement rune.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(nil, mem.S(src[1:len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
