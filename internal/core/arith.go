package core

// DivCeil returns ceil(dividend / divisor).
func DivCeil[T Unsigned](dividend, divisor T) T {
	q := dividend / divisor
	if dividend%divisor != 0 {
		q++
	}
	return q
}

// ProdDiv returns floor(factor1 * factor2 / divisor) without forming the full
// product. Requires divisor > 0 and factor2 <= max(T)/divisor.
func ProdDiv[T Unsigned](factor1, factor2, divisor T) T {
	if Debug && (divisor == 0 || factor2 > ^T(0)/divisor) {
		panic(PreconditionError{Op: "ProdDiv", Msg: "factor2 * divisor overflows"})
	}
	q, r := DivMod(factor1, divisor)
	return factor2*q + (factor2*r)/divisor
}

// ProdDivBy is ProdDiv with a precomputed divisor.
func ProdDivBy[T Unsigned](factor1, factor2 T, divisor Divisor[T]) T {
	q, r := divisor.DivMod(factor1)
	return factor2*q + divisor.Div(factor2*r)
}
