// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"
)

var (
	// ErrNumberOutOfRange reports a number whose magnitude does not fit the
	// widest supported representation.
	ErrNumberOutOfRange = errors.New("number out of range")

	// ErrInvalidNumber reports a number literal that is not well-formed, or a
	// non-finite value that has no JSON encoding.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidKeyType reports an object key that is not a string.
	ErrInvalidKeyType = errors.New("object key is not a string")

	// ErrUnbalanced reports an Encoder call that does not fit the structure
	// open at the time of the call.
	ErrUnbalanced = errors.New("unbalanced structure")

	// ErrEncoderOverflow reports that an Encoder's nesting capacity was
	// exhausted.
	ErrEncoderOverflow = errors.New("encoder nesting overflow")
)

// SyntaxError is the concrete type of errors reported by the decoder.
type SyntaxError struct {
	Offset   int     // byte offset of the error in the input
	Location LineCol // line and column of Offset
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
