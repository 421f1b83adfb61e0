// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import "math/bits"

// roundAndPack builds a value from a sign, a wide biased exponent, 128
// fraction bits (implicit integer bit understood) and the guard and
// sticky bits left over from an operation. It rounds half to even,
// propagates the mantissa carry into the exponent, clamps overflow to
// infinity and denormalizes results whose exponent falls below the
// normal range.
func roundAndPack(neg bool, be int64, hi, lo uint64, guard, sticky bool) Quadruple {
	if be >= expInf {
		return inf(neg)
	}
	denorm := false
	if be <= 0 {
		n := 1 - be
		if n > 129 {
			// Everything is below the guard position of the subnormal
			// grid; rounds to zero.
			return zero(neg)
		}
		var g, s bool
		hi, lo, g, s = shiftRight129(hi, lo, uint(n))
		sticky = sticky || guard || s
		guard = g
		denorm = true
		be = 0
	}
	if guard && (sticky || lo&1 != 0) {
		var c uint64
		lo, c = bits.Add64(lo, 1, 0)
		hi, c = bits.Add64(hi, 0, c)
		if c != 0 {
			// The fraction wrapped: 1.11…1 became 10.00…0. For a
			// subnormal this lands exactly on the smallest normal.
			if denorm {
				return Quadruple{neg: neg, exp: 1}
			}
			be++
			if be >= expInf {
				return inf(neg)
			}
			return Quadruple{neg: neg, exp: uint32(be)}
		}
	}
	if denorm {
		return Quadruple{neg: neg, mantHi: hi, mantLo: lo}
	}
	return Quadruple{neg: neg, exp: uint32(be), mantHi: hi, mantLo: lo}
}

// shiftRight129 shifts the significand 1:hi:lo right by n (1 <= n <= 129)
// and returns the dropped guard bit plus a flag for any lower dropped bit.
func shiftRight129(hi, lo uint64, n uint) (rHi, rLo uint64, guard, sticky bool) {
	switch {
	case n <= 64:
		guard = lo>>(n-1)&1 != 0
		sticky = lo&(1<<(n-1)-1) != 0
		rLo = lo>>n | hi<<(64-n)
		rHi = hi>>n | 1<<(64-n)
	case n <= 128:
		m := n - 64
		guard = hi>>(m-1)&1 != 0
		sticky = hi&(1<<(m-1)-1) != 0 || lo != 0
		rLo = hi>>m | 1<<(64-m)
	default: // n == 129
		guard = true
		sticky = hi|lo != 0
	}
	return rHi, rLo, guard, sticky
}
