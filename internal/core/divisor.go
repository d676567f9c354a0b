package core

import (
	"fmt"
	"math/bits"
)

// Unsigned is the set of integer types a Divisor can be built for.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Width returns the bit width of T (8, 16, 32 or 64).
// It only depends on T, so every switch over it resolves per instantiation.
func Width[T Unsigned]() int {
	return bits.Len64(uint64(^T(0)))
}

// Divisor replaces division by a fixed value with a multiply by a precomputed
// fixed-point reciprocal.
//
// The implementation follows Lemire, Kaser and Kurz, "Faster Remainder by
// Direct Computation" (https://arxiv.org/abs/1902.01961), generalised to all
// unsigned widths: the reciprocal has twice the bits of T, so the results are
// exact for every dividend representable in T.
//
// A Divisor is immutable and may be shared between goroutines.
type Divisor[T Unsigned] struct {
	divisor T
	// inverse is ceil(2^(2B)/divisor) truncated to 2B bits; 0 iff divisor == 1.
	inverse Uint128
	// mask is all-ones iff inverse == 0 so that Div degrades to the identity.
	mask T
}

// NewDivisor computes the reciprocal of d. d must be non-zero.
func NewDivisor[T Unsigned](d T) Divisor[T] {
	if Debug && d == 0 {
		panic(PreconditionError{Op: "NewDivisor", Msg: "divisor is zero"})
	}

	var inv Uint128
	switch Width[T]() {
	case 8:
		inv.Lo = uint64(0xFFFF/uint16(d) + 1)
	case 16:
		inv.Lo = uint64(0xFFFFFFFF/uint32(d) + 1)
	case 32:
		inv.Lo = ^uint64(0)/uint64(d) + 1
	default:
		inv = invert64(uint64(d))
	}

	var mask T
	if inv.IsZero() {
		mask = ^T(0)
	}
	return Divisor[T]{divisor: d, inverse: inv, mask: mask}
}

// Div returns a / d.
func (d Divisor[T]) Div(a T) T {
	var q T
	switch Width[T]() {
	case 8:
		q = T(mulFracInt8(uint16(d.inverse.Lo), uint8(a)))
	case 16:
		q = T(mulFracInt16(uint32(d.inverse.Lo), uint16(a)))
	case 32:
		q = T(mulFracInt32(d.inverse.Lo, uint32(a)))
	default:
		q = T(mulFracInt64(d.inverse, uint64(a)))
	}
	return q + (d.mask & a)
}

// Mod returns a % d. The remainder is read directly from the fractional bits
// of inverse*a; no quotient is formed.
func (d Divisor[T]) Mod(a T) T {
	switch Width[T]() {
	case 8:
		low := uint16(d.inverse.Lo) * uint16(a)
		return T(mulFracInt8(low, uint8(d.divisor)))
	case 16:
		low := uint32(d.inverse.Lo) * uint32(a)
		return T(mulFracInt16(low, uint16(d.divisor)))
	case 32:
		low := d.inverse.Lo * uint64(a)
		return T(mulFracInt32(low, uint32(d.divisor)))
	default:
		low := d.inverse.MulLow(uint64(a))
		return T(mulFracInt64(low, uint64(d.divisor)))
	}
}

// IsDivisible reports whether n % d == 0.
func (d Divisor[T]) IsDivisible(n T) bool {
	// n*inverse <= inverse-1 rather than n*inverse < inverse: with divisor 1
	// the inverse is 0 and inverse-1 wraps to the maximum.
	switch Width[T]() {
	case 8:
		inv := uint16(d.inverse.Lo)
		return uint16(n)*inv <= inv-1
	case 16:
		inv := uint32(d.inverse.Lo)
		return uint32(n)*inv <= inv-1
	case 32:
		inv := d.inverse.Lo
		return uint64(n)*inv <= inv-1
	default:
		return d.inverse.MulLow(uint64(n)).LessOrEqual(d.inverse.Dec())
	}
}

// Get returns the effective divisor, reporting 1 for the degenerate reciprocal.
func (d Divisor[T]) Get() T {
	if d.inverse.IsZero() {
		return 1
	}
	return d.divisor
}

// Value returns the divisor exactly as passed to NewDivisor.
func (d Divisor[T]) Value() T {
	return d.divisor
}

// Inverse returns the stored fixed-point reciprocal.
func (d Divisor[T]) Inverse() Uint128 {
	return d.inverse
}

// DivMod returns a / d and a % d, the remainder being a - q*d.
func (d Divisor[T]) DivMod(a T) (T, T) {
	return DivModBy(a, d)
}

// String implements fmt.Stringer.
func (d Divisor[T]) String() string {
	return fmt.Sprintf("Divisor(%d, inverse=%s)", uint64(d.divisor), d.inverse)
}

// DivMod returns dividend/divisor and dividend%divisor using the hardware divide.
func DivMod[T Unsigned](dividend, divisor T) (T, T) {
	return dividend / divisor, dividend % divisor
}

// DivModBy returns the quotient through the reciprocal and derives the
// remainder by subtraction.
func DivModBy[T Unsigned](dividend T, divisor Divisor[T]) (T, T) {
	q := divisor.Div(dividend)
	return q, dividend - q*divisor.Get()
}

// DivModFrac is DivModBy with the remainder taken from the fractional product.
func DivModFrac[T Unsigned](dividend T, divisor Divisor[T]) (T, T) {
	return divisor.Div(dividend), divisor.Mod(dividend)
}
