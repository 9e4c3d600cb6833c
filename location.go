// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"

	"go4.org/mem"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// lineColAt returns the location of byte offset pos in src.
func lineColAt(src mem.RO, pos int) LineCol {
	head := src.SliceTo(min(pos, src.Len()))
	lc := LineCol{Line: 1, Column: head.Len()}
	for {
		i := mem.IndexByte(head, '\n')
		if i < 0 {
			break
		}
		lc.Line++
		head = head.SliceFrom(i + 1)
		lc.Column = head.Len()
	}
	return lc
}
