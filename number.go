// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"go4.org/mem"
)

// IntWidth names a native integer representation.
type IntWidth byte

// Constants defining the valid IntWidth values, narrowest first.
const (
	Int8 IntWidth = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
)

var intWidthStr = [...]string{
	Int8: "int8", Uint8: "uint8", Int16: "int16", Uint16: "uint16",
	Int32: "int32", Uint32: "uint32", Int64: "int64", Uint64: "uint64",
}

func (w IntWidth) String() string {
	if int(w) >= len(intWidthStr) {
		return "invalid width"
	}
	return intWidthStr[w]
}

// Bits reports the size of w in bits.
func (w IntWidth) Bits() int { return 8 << (w / 2) }

// Signed reports whether w is a signed representation.
func (w IntWidth) Signed() bool { return w%2 == 0 }

// FloatWidth names a native floating-point representation.
type FloatWidth byte

// Constants defining the valid FloatWidth values, narrowest first.
const (
	Float32 FloatWidth = iota
	Float64
)

func (w FloatWidth) String() string {
	switch w {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "invalid width"
}

// Bits reports the size of w in bits.
func (w FloatWidth) Bits() int { return 32 << w }

// The narrowing ladders list the widths that can hold a value together with
// the bound that value must respect, ordered widest to narrowest. The width
// of a value is the last rung whose bound it satisfies.
//
// Non-negative values resolve to an unsigned width: every unsigned width
// holds at least the values its signed counterpart of equal size holds.
var (
	unsignedLadder = [...]struct {
		width IntWidth
		max   uint64
	}{
		{Uint64, math.MaxUint64},
		{Uint32, math.MaxUint32},
		{Uint16, math.MaxUint16},
		{Uint8, math.MaxUint8},
	}

	signedLadder = [...]struct {
		width IntWidth
		min   int64
	}{
		{Int64, math.MinInt64},
		{Int32, math.MinInt32},
		{Int16, math.MinInt16},
		{Int8, math.MinInt8},
	}
)

// A Number is a JSON number together with its value at every supported
// native width. All the fields of a Number are populated regardless of how it
// was constructed: a width that cannot hold the value exactly reports a
// truncated (for integers) or saturated (for fractions) conversion.
//
// MinInt and MinFloat report the narrowest widths whose range holds the value.
type Number struct {
	neg, frac bool

	minInt   IntWidth
	minFloat FloatWidth

	u64 uint64
	i64 int64
	u32 uint32
	i32 int32
	u16 uint16
	i16 int16
	u8  uint8
	i8  int8

	f64 float64
	f32 float32
}

// IsNegative reports whether n has a negative sign. For an integer this
// follows the literal, so -0 is negative.
func (n Number) IsNegative() bool { return n.neg }

// IsFractional reports whether n was written with a fraction or exponent,
// or constructed from a floating-point value.
func (n Number) IsFractional() bool { return n.frac }

// MinInt reports the narrowest integer width whose range holds n. For a
// fractional number this is the width of its integer part, which saturates at
// Uint64 or Int64 when the magnitude is beyond the 64-bit range.
func (n Number) MinInt() IntWidth { return n.minInt }

// MinFloat reports the narrowest floating-point width whose range holds n.
// Narrowing to Float32 may lose precision.
func (n Number) MinFloat() FloatWidth { return n.minFloat }

func (n Number) Uint64() uint64   { return n.u64 }
func (n Number) Int64() int64     { return n.i64 }
func (n Number) Uint32() uint32   { return n.u32 }
func (n Number) Int32() int32     { return n.i32 }
func (n Number) Uint16() uint16   { return n.u16 }
func (n Number) Int16() int16     { return n.i16 }
func (n Number) Uint8() uint8     { return n.u8 }
func (n Number) Int8() int8       { return n.i8 }
func (n Number) Float64() float64 { return n.f64 }
func (n Number) Float32() float32 { return n.f32 }

// String returns the JSON text of n.
func (n Number) String() string { return string(n.appendText(nil)) }

// appendText appends the JSON text of n to buf. The caller is responsible to
// check that a fractional n is finite.
func (n Number) appendText(buf []byte) []byte {
	switch {
	case n.frac:
		return appendFloat(buf, n.f64, 64)
	case n.neg:
		return strconv.AppendInt(buf, n.i64, 10)
	default:
		return strconv.AppendUint(buf, n.u64, 10)
	}
}

// equal reports whether n and m denote the same numeric value.
func (n Number) equal(m Number) bool {
	if n.frac || m.frac {
		return n.f64 == m.f64
	}
	return n.u64 == m.u64 && (n.neg == m.neg || n.u64 == 0)
}

// setInts populates the integer fields with the truncations of the 64-bit
// pattern v.
func (n *Number) setInts(v uint64) {
	n.u64, n.i64 = v, int64(v)
	n.u32, n.i32 = uint32(v), int32(v)
	n.u16, n.i16 = uint16(v), int16(v)
	n.u8, n.i8 = uint8(v), int8(v)
}

// setFloats populates the float fields from f.
func (n *Number) setFloats(f float64) {
	n.f64, n.f32 = f, float32(f)
	n.minFloat = Float64
	if math.Abs(f) <= math.MaxFloat32 {
		n.minFloat = Float32
	}
}

func unsignedWidth(v uint64) IntWidth {
	w := Uint64
	for _, r := range unsignedLadder {
		if v <= r.max {
			w = r.width
		}
	}
	return w
}

func signedWidth(v int64) IntWidth {
	w := Int64
	for _, r := range signedLadder {
		if v >= r.min {
			w = r.width
		}
	}
	return w
}

func uintNumber(v uint64) Number {
	n := Number{minInt: unsignedWidth(v)}
	n.setInts(v)
	n.setFloats(float64(v))
	return n
}

// negNumber constructs an integral number with a negative sign. The value
// may be zero, for the literal -0.
func negNumber(v int64) Number {
	n := Number{neg: true, minInt: signedWidth(v)}
	n.setInts(uint64(v))
	n.setFloats(float64(v))
	return n
}

func intNumber(v int64) Number {
	if v < 0 {
		return negNumber(v)
	}
	return uintNumber(uint64(v))
}

func floatNumber(f float64) Number {
	n := Number{neg: f < 0, frac: true}
	n.setFloats(f)

	t := math.Trunc(f)
	u64 := clampUint(t, math.MaxUint64)
	i64 := clampInt(t, math.MinInt64, math.MaxInt64)
	if t < 0 {
		n.minInt = signedWidth(i64)
	} else {
		n.minInt = unsignedWidth(u64)
	}
	n.u64, n.i64 = u64, i64
	n.u32 = uint32(clampUint(t, math.MaxUint32))
	n.i32 = int32(clampInt(t, math.MinInt32, math.MaxInt32))
	n.u16 = uint16(clampUint(t, math.MaxUint16))
	n.i16 = int16(clampInt(t, math.MinInt16, math.MaxInt16))
	n.u8 = uint8(clampUint(t, math.MaxUint8))
	n.i8 = int8(clampInt(t, math.MinInt8, math.MaxInt8))
	return n
}

// clampUint converts the integral float t to an unsigned integer, saturating
// at 0 and hi. NaN converts to 0.
func clampUint(t float64, hi uint64) uint64 {
	switch {
	case !(t > 0):
		return 0
	case t >= float64(hi):
		return hi
	}
	return uint64(t)
}

// clampInt converts the integral float t to a signed integer, saturating at
// lo and hi. NaN converts to 0.
func clampInt(t float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(t):
		return 0
	case t <= float64(lo):
		return lo
	case t >= float64(hi):
		return hi
	}
	return int64(t)
}

// parseNumber parses lit, which must match the JSON number grammar. If
// integral is true, lit has no fraction or exponent.
func parseNumber(lit mem.RO, integral bool) (Number, error) {
	if !integral {
		f, err := mem.ParseFloat(lit, 64)
		if err != nil {
			return Number{}, numberError(lit, err)
		}
		return floatNumber(f), nil
	}

	neg := lit.Len() != 0 && lit.At(0) == '-'
	mag := lit
	if neg {
		mag = lit.SliceFrom(1)
	}
	u, err := mem.ParseUint(mag, 10, 64)
	if err != nil {
		return Number{}, numberError(lit, err)
	} else if !neg {
		return uintNumber(u), nil
	} else if u > 1<<63 {
		return Number{}, fmt.Errorf("%w: %s", ErrNumberOutOfRange, lit.StringCopy())
	}
	return negNumber(int64(-u)), nil
}

func numberError(lit mem.RO, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %s", ErrNumberOutOfRange, lit.StringCopy())
	}
	return fmt.Errorf("%w: %q", ErrInvalidNumber, lit.StringCopy())
}

// scanNumber matches the longest prefix of src beginning at pos that has the
// form of a JSON number,
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?
//
// and reports the offsets where its integer and fraction parts end, and where
// the whole number ends. If no number begins at pos, ok is false.
func scanNumber(src mem.RO, pos int) (intEnd, fracEnd, end int, ok bool) {
	i := pos
	if i < src.Len() && src.At(i) == '-' {
		i++
	}
	switch {
	case i < src.Len() && src.At(i) == '0':
		i++
	case i < src.Len() && isDigit(src.At(i)):
		i = skipDigits(src, i)
	default:
		return 0, 0, 0, false
	}
	intEnd = i

	if i+1 < src.Len() && src.At(i) == '.' && isDigit(src.At(i+1)) {
		i = skipDigits(src, i+1)
	}
	fracEnd = i

	if i < src.Len() && (src.At(i) == 'e' || src.At(i) == 'E') {
		j := i + 1
		if j < src.Len() && (src.At(j) == '+' || src.At(j) == '-') {
			j++
		}
		if j < src.Len() && isDigit(src.At(j)) {
			i = skipDigits(src, j)
		}
	}
	return intEnd, fracEnd, i, true
}

func skipDigits(src mem.RO, i int) int {
	for i < src.Len() && isDigit(src.At(i)) {
		i++
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// maxPlainFloat is the magnitude at which plain notation gives way to an
// exponent. Below it, an integral float written without a fraction still
// parses as an integer that fits in 64 bits.
const maxPlainFloat = 1 << 63

// appendFloat appends the shortest decimal text that parses back to f at the
// given bit size. Exponent notation is used only for very small or very large
// magnitudes.
func appendFloat(buf []byte, f float64, bits int) []byte {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= maxPlainFloat) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= maxPlainFloat) {
			format = 'e'
		}
	}
	buf = strconv.AppendFloat(buf, f, format, -1, bits)
	if format == 'e' {
		// Trim a leading zero from a two-digit exponent: e-07 becomes e-7.
		n := len(buf)
		if n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf
}
