// Package core provides the fixed-point reciprocal divisor and the small
// integer helpers built on top of it.
package core

import (
	"fmt"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer split into two 64-bit halves.
// It holds the 2B-bit reciprocal of a 64-bit Divisor; narrower widths only use Lo.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// IsZero reports whether u == 0.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// MulLow returns the low 128 bits of u * v.
func (u Uint128) MulLow(v uint64) Uint128 {
	hi, lo := bits.Mul64(u.Lo, v)
	// Only the low word of Hi*v lands inside 128 bits.
	return Uint128{Hi: hi + u.Hi*v, Lo: lo}
}

// Dec returns u - 1 modulo 2^128.
func (u Uint128) Dec() Uint128 {
	lo, borrow := bits.Sub64(u.Lo, 1, 0)
	return Uint128{Hi: u.Hi - borrow, Lo: lo}
}

// LessOrEqual reports whether u <= v.
func (u Uint128) LessOrEqual(v Uint128) bool {
	if u.Hi != v.Hi {
		return u.Hi < v.Hi
	}
	return u.Lo <= v.Lo
}

// String formats u as 0x<hi><lo>.
func (u Uint128) String() string {
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}

// invert64 computes floor((2^128 - 1) / d) + 1 modulo 2^128, i.e. ceil(2^128/d)
// for d > 1 and 0 for d == 1.
func invert64(d uint64) Uint128 {
	// Schoolbook division of N = (2^64-1)<<64 | (2^64-1) by d:
	// qh = floor(Nh / d), then divide (rh<<64 | Nl) by d with Div64.
	qh := ^uint64(0) / d
	rh := ^uint64(0) - qh*d
	ql, _ := bits.Div64(rh, ^uint64(0), d)

	var m Uint128
	var carry uint64
	m.Lo, carry = bits.Add64(ql, 1, 0)
	m.Hi, _ = bits.Add64(qh, 0, carry) // carry out of bit 128 is dropped
	return m
}

// The mulFracInt family computes floor(a * b) where a is a fraction in [0, 1)
// with 2B fractional bits and b is a B-bit integer. One variant per width.

// mulFracInt8: a is UFixed<0,16>, b is UFixed<8,0>.
func mulFracInt8(a uint16, b uint8) uint8 {
	return uint8((uint32(a) * uint32(b)) >> 16)
}

// mulFracInt16: a is UFixed<0,32>, b is UFixed<16,0>.
func mulFracInt16(a uint32, b uint16) uint16 {
	return uint16((uint64(a) * uint64(b)) >> 32)
}

// mulFracInt32: a is UFixed<0,64>, b is UFixed<32,0>.
func mulFracInt32(a uint64, b uint32) uint32 {
	hi, _ := bits.Mul64(a, uint64(b))
	return uint32(hi)
}

// mulFracInt64: a is UFixed<0,128>, b is UFixed<64,0>.
// The top 64 bits of the 192-bit product are assembled from two partial
// products:
//
//	p1 = (a.Lo * b) >> 64   (the dropped low word cannot carry into bit 128)
//	p2 = a.Hi * b           (already aligned one word down)
//	result = (p1 + p2) >> 64
func mulFracInt64(a Uint128, b uint64) uint64 {
	p2hi, p2lo := bits.Mul64(a.Hi, b)
	p1, _ := bits.Mul64(a.Lo, b)
	_, carry := bits.Add64(p2lo, p1, 0)
	return p2hi + carry
}
