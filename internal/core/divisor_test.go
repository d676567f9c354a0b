package core

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"
)

// checkDivisor compares every Divisor operation for dividend a against the
// hardware divide and fails the test on the first mismatch.
func checkDivisor[T Unsigned](t *testing.T, dv Divisor[T], a T) {
	t.Helper()
	d := dv.Value()
	wantQ, wantR := a/d, a%d

	if got := dv.Div(a); got != wantQ {
		t.Fatalf("%d / Divisor(%d) = %d, want %d", uint64(a), uint64(d), uint64(got), uint64(wantQ))
	}
	if got := dv.Mod(a); got != wantR {
		t.Fatalf("%d %% Divisor(%d) = %d, want %d", uint64(a), uint64(d), uint64(got), uint64(wantR))
	}
	if got := dv.IsDivisible(a); got != (wantR == 0) {
		t.Fatalf("Divisor(%d).IsDivisible(%d) = %t, want %t", uint64(d), uint64(a), got, wantR == 0)
	}
	if q, r := DivModBy(a, dv); q != wantQ || r != wantR {
		t.Fatalf("DivModBy(%d, %d) = (%d, %d), want (%d, %d)",
			uint64(a), uint64(d), uint64(q), uint64(r), uint64(wantQ), uint64(wantR))
	}
	if q, r := DivModFrac(a, dv); q != wantQ || r != wantR {
		t.Fatalf("DivModFrac(%d, %d) = (%d, %d), want (%d, %d)",
			uint64(a), uint64(d), uint64(q), uint64(r), uint64(wantQ), uint64(wantR))
	}
}

// boundaryDividends returns {0, 1, d-1, d, d+1, max-1, max} plus n random values.
func boundaryDividends[T Unsigned](rng *rand.Rand, d T, n int) []T {
	maxT := ^T(0)
	out := []T{0, 1, d - 1, d, d + 1, maxT - 1, maxT}
	for i := 0; i < n; i++ {
		out = append(out, T(rng.Uint64()))
	}
	return out
}

func TestDivisorUint8Exhaustive(t *testing.T) {
	for d := 1; d <= math.MaxUint8; d++ {
		dv := NewDivisor(uint8(d))
		for a := 0; a <= math.MaxUint8; a++ {
			checkDivisor(t, dv, uint8(a))
		}
	}
}

func TestDivisorUint16(t *testing.T) {
	rng := rand.New(rand.NewSource(16))

	// Every divisor against the boundary dividends.
	for d := 1; d <= math.MaxUint16; d++ {
		dv := NewDivisor(uint16(d))
		for _, a := range boundaryDividends(rng, uint16(d), 4) {
			checkDivisor(t, dv, a)
		}
	}

	// Every dividend against a spread of divisors.
	divisors := []uint16{1, 2, 3, 5, 7, 10, 255, 256, 257, 1000, 4095, 32767, 32768, 32769, 65534, 65535}
	for i := 0; i < 8; i++ {
		divisors = append(divisors, uint16(rng.Intn(math.MaxUint16))+1)
	}
	for _, d := range divisors {
		dv := NewDivisor(d)
		for a := 0; a <= math.MaxUint16; a++ {
			checkDivisor(t, dv, uint16(a))
		}
	}
}

func TestDivisorUint32(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	divisors := []uint32{1, 2, 3, 7, 1020, 1 << 16, 1<<16 + 1, 1<<31 - 1, 1 << 31, 1<<31 + 1, math.MaxUint32 - 1, math.MaxUint32}
	for i := 0; i < 2000; i++ {
		divisors = append(divisors, uint32(rng.Uint64()>>uint(rng.Intn(32)))|1)
	}

	for _, d := range divisors {
		dv := NewDivisor(d)
		for _, a := range boundaryDividends(rng, d, 64) {
			checkDivisor(t, dv, a)
		}
	}
}

func TestDivisorUint64(t *testing.T) {
	rng := rand.New(rand.NewSource(64))
	divisors := []uint64{
		1, 2, 3, 7, 1020, 4294967295, 4294967296, 4294967297,
		9223372036854775807, 9223372036854775808, math.MaxUint64 - 1, math.MaxUint64,
	}
	for i := 0; i < 2000; i++ {
		divisors = append(divisors, (rng.Uint64()>>uint(rng.Intn(64)))|1)
	}
	for i := 0; i < 64; i++ {
		divisors = append(divisors, 1<<uint(i))
	}

	for _, d := range divisors {
		dv := NewDivisor(d)
		for _, a := range boundaryDividends(rng, d, 64) {
			checkDivisor(t, dv, a)
		}
	}
}

func TestDivisorUintAndNamedTypes(t *testing.T) {
	type segmentID uint32

	rng := rand.New(rand.NewSource(99))
	for _, d := range []uint{1, 3, 1 << 20, ^uint(0)} {
		dv := NewDivisor(d)
		for _, a := range boundaryDividends(rng, d, 16) {
			checkDivisor(t, dv, a)
		}
	}
	for _, d := range []segmentID{1, 9, 1 << 31} {
		dv := NewDivisor(d)
		for _, a := range boundaryDividends(rng, d, 16) {
			checkDivisor(t, dv, a)
		}
	}
}

// The stored inverse must equal ceil(2^(2B)/d) reduced modulo 2^(2B).
func TestDivisorInverseMatchesBig(t *testing.T) {
	check := func(name string, width uint, d uint64, got Uint128) {
		t.Helper()
		modulus := new(big.Int).Lsh(big.NewInt(1), 2*width)
		bd := new(big.Int).SetUint64(d)
		want := new(big.Int).Add(modulus, bd)
		want.Sub(want, big.NewInt(1))
		want.Div(want, bd)
		want.Mod(want, modulus)
		if u128ToBig(got).Cmp(want) != 0 {
			t.Errorf("%s inverse of %d = %s, want %#x", name, d, got, want)
		}
	}

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		d := rng.Uint64() | 1
		check("uint8", 8, uint64(uint8(d)), NewDivisor(uint8(d)).Inverse())
		check("uint16", 16, uint64(uint16(d)), NewDivisor(uint16(d)).Inverse())
		check("uint32", 32, uint64(uint32(d)), NewDivisor(uint32(d)).Inverse())
		check("uint64", 64, d, NewDivisor(d).Inverse())
	}
}

func TestDivisorOne(t *testing.T) {
	dv := NewDivisor(uint64(1))
	if !dv.Inverse().IsZero() {
		t.Fatalf("Divisor(1).Inverse() = %s, want 0", dv.Inverse())
	}
	if dv.Get() != 1 {
		t.Errorf("Divisor(1).Get() = %d, want 1", dv.Get())
	}

	rng := rand.New(rand.NewSource(1))
	samples := []uint64{0, 1, 2, math.MaxUint64 - 1, math.MaxUint64}
	for i := 0; i < 1000; i++ {
		samples = append(samples, rng.Uint64())
	}
	for _, a := range samples {
		if got := dv.Div(a); got != a {
			t.Fatalf("%d / Divisor(1) = %d, want %d", a, got, a)
		}
		if got := dv.Mod(a); got != 0 {
			t.Fatalf("%d %% Divisor(1) = %d, want 0", a, got)
		}
		if !dv.IsDivisible(a) {
			t.Fatalf("Divisor(1).IsDivisible(%d) = false, want true", a)
		}
		if q, r := dv.DivMod(a); q != a || r != 0 {
			t.Fatalf("Divisor(1).DivMod(%d) = (%d, %d), want (%d, 0)", a, q, r, a)
		}
	}

	// Narrow widths take the same degenerate path.
	for a := 0; a <= math.MaxUint8; a++ {
		d8 := NewDivisor(uint8(1))
		if d8.Div(uint8(a)) != uint8(a) || d8.Mod(uint8(a)) != 0 || !d8.IsDivisible(uint8(a)) {
			t.Fatalf("uint8 Divisor(1) wrong for %d", a)
		}
	}
}

func TestDivisorMaxUint64(t *testing.T) {
	const maxU64 = uint64(math.MaxUint64)
	dv := NewDivisor(maxU64)

	tests := []struct {
		a       uint64
		q, r    uint64
		divides bool
	}{
		{0, 0, 0, true},
		{1, 0, 1, false},
		{maxU64 - 1, 0, maxU64 - 1, false},
		{maxU64, 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("a=%d", tt.a), func(t *testing.T) {
			if got := dv.Div(tt.a); got != tt.q {
				t.Errorf("Div = %d, want %d", got, tt.q)
			}
			if got := dv.Mod(tt.a); got != tt.r {
				t.Errorf("Mod = %d, want %d", got, tt.r)
			}
			if got := dv.IsDivisible(tt.a); got != tt.divides {
				t.Errorf("IsDivisible = %t, want %t", got, tt.divides)
			}
			if q, r := dv.DivMod(tt.a); q != tt.q || r != tt.r {
				t.Errorf("DivMod = (%d, %d), want (%d, %d)", q, r, tt.q, tt.r)
			}
		})
	}
}

func TestDivisorTwo(t *testing.T) {
	const maxU64 = uint64(math.MaxUint64)
	dv := NewDivisor(uint64(2))
	pairs := [][3]uint64{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 0},
		{maxU64, maxU64 / 2, 1},
	}
	for _, p := range pairs {
		if q, r := DivModBy(p[0], dv); q != p[1] || r != p[2] {
			t.Errorf("DivModBy(%d, 2) = (%d, %d), want (%d, %d)", p[0], q, r, p[1], p[2])
		}
	}
}

func TestDivisorUint64KnownVectors(t *testing.T) {
	testCases := []struct {
		a, d, want uint64
	}{
		{0, 1020, 0},
		{1, 1020, 1},
		{1019, 1020, 1019},
		{1020, 1020, 0},
		{1021, 1020, 1},
		{33770903594394249, 1020, 9},
		{49276032860695964, 1020, 224},
		{0, 9223372036854775807, 0},
		{1234567890123456789, 9223372036854775807, 1234567890123456789},
		{9223372036854775806, 9223372036854775807, 9223372036854775806},
		{9223372036854775807, 9223372036854775807, 0},
		{9223372036854775808, 9223372036854775807, 1},
		{18446744073709551615, 9223372036854775807, 1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("a=%d,d=%d", tc.a, tc.d), func(t *testing.T) {
			dv := NewDivisor(tc.d)
			if got := dv.Mod(tc.a); got != tc.want {
				t.Errorf("%d %% Divisor(%d) = %d, want %d (inverse %s)", tc.a, tc.d, got, tc.want, dv.Inverse())
			}
		})
	}
}

func TestDivModNative(t *testing.T) {
	if q, r := DivMod(uint32(17), 5); q != 3 || r != 2 {
		t.Errorf("DivMod(17, 5) = (%d, %d), want (3, 2)", q, r)
	}
}

func TestWidth(t *testing.T) {
	if Width[uint8]() != 8 || Width[uint16]() != 16 || Width[uint32]() != 32 || Width[uint64]() != 64 {
		t.Errorf("Width reported %d/%d/%d/%d", Width[uint8](), Width[uint16](), Width[uint32](), Width[uint64]())
	}
}

// --- Benchmarks ---

func BenchmarkDivisorDiv64(b *testing.B) {
	dv := NewDivisor(uint64(1020))
	b.ReportAllocs()
	b.ResetTimer()

	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += dv.Div(uint64(i) * 0x9E3779B97F4A7C15)
	}
	_ = sink
}

func BenchmarkDivisorMod32(b *testing.B) {
	dv := NewDivisor(uint32(128))
	b.ReportAllocs()
	b.ResetTimer()

	n := uint32(b.N)
	var sink uint32
	for i := uint32(0); i < n; i++ {
		sink += dv.Mod(i)
	}
	_ = sink
}

func BenchmarkNativeDiv64(b *testing.B) {
	d := uint64(1020)
	b.ReportAllocs()
	b.ResetTimer()

	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += (uint64(i) * 0x9E3779B97F4A7C15) / d
	}
	_ = sink
}
