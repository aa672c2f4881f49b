package math

import (
	"math"
)

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func Min[T Number](a, b T) T {

	if a < b {
		return a
	} else {
		return b
	}
}

func Max[T Number](a, b T) T {
	if a > b {
		return a
	} else {
		return b
	}
}

func Sqrt[T Number](num T) T {
	return T(math.Sqrt(float64(num)))
}

func Abs[T Number](num T) T {
	if num < 0 {
		return -num
	}
	return num
}

// CeilPowerOfTwo returns the smallest power of two >= |num|, or 0 for 0.
// Powers of two keep repeated halving exact in floating point, which is
// why region sizes are rounded up to them.
func CeilPowerOfTwo(num float64) float64 {
	num = math.Abs(num)
	if num == 0 {
		return 0
	}
	if math.IsInf(num, 0) {
		return num
	}
	frac, exp := math.Frexp(num) // num = frac * 2^exp, frac in [0.5, 1)
	if frac == 0.5 {
		exp--
	}
	return math.Ldexp(1, exp)
}
