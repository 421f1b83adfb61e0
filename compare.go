// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

// Cmp compares two values in the total order -Inf < finite < +Inf < NaN.
// Unlike the IEEE predicate, NaN equals NaN and -0 sorts below +0, so
// the result is usable as a sort key.
func (q Quadruple) Cmp(o Quadruple) int {
	qn, on := q.IsNaN(), o.IsNaN()
	switch {
	case qn && on:
		return 0
	case qn:
		return 1
	case on:
		return -1
	}
	if q.neg != o.neg {
		if q.neg {
			return -1
		}
		return 1
	}
	r := cmpParts(q, o)
	if q.neg {
		return -r
	}
	return r
}

// cmpParts orders equal-signed values by magnitude. The storage fields
// compare lexicographically: the biased exponent grows with magnitude
// and infinities use the largest exponent of all.
func cmpParts(a, b Quadruple) int {
	switch {
	case a.exp != b.exp:
		if a.exp > b.exp {
			return 1
		}
		return -1
	case a.mantHi != b.mantHi:
		if a.mantHi > b.mantHi {
			return 1
		}
		return -1
	case a.mantLo != b.mantLo:
		if a.mantLo > b.mantLo {
			return 1
		}
		return -1
	}
	return 0
}

// Max returns the larger of a and b in the Cmp order, or NaN if either
// is NaN.
func Max(a, b Quadruple) Quadruple {
	if a.IsNaN() || b.IsNaN() {
		return NaN()
	}
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Min returns the smaller of a and b in the Cmp order, or NaN if either
// is NaN.
func Min(a, b Quadruple) Quadruple {
	if a.IsNaN() || b.IsNaN() {
		return NaN()
	}
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
