package limbutil

import "math/bits"

// Div129 divides two 129-bit significands given as implicit-one fraction
// pairs, both representing values in [1, 2). It returns the 128 fraction
// bits of the quotient normalized to [1, 2), the guard and sticky bits of
// the infinite quotient, and 1 if the dividend had to be doubled to keep
// the quotient above one (the caller decrements the exponent by that).
//
// The kernel runs schoolbook long division in base 2^32: five divisor
// limbs, a ten-word dividend buffer that becomes the running remainder,
// one 32-bit quotient digit per step. The trial digit divides the
// remainder's leading three limbs by the divisor's leading two; it is
// either exact or one too large, so a single add-back corrects it.
func Div129(aHi, aLo, bHi, bLo uint64) (qHi, qLo uint64, guard, sticky bool, expDec int64) {
	var (
		u [DividendWords]uint64
		v [DivisorWords]uint64
		q [DivisorWords]uint64
	)
	ip, hi, lo := uint64(1), aHi, aLo
	if aHi < bHi || (aHi == bHi && aLo < bLo) {
		// Dividend smaller than divisor: double it so the quotient
		// stays in [1, 2).
		ip = 2 | aHi>>63
		hi = aHi<<1 | aLo>>63
		lo = aLo << 1
		expDec = 1
	}
	unpack129(ip, hi, lo, u[:DivisorWords])
	unpack129(1, bHi, bLo, v[:])

	// First digit is always 1: subtract the divisor once.
	q[0] = 1
	subLimbs(u[:DivisorWords], v[:])

	// Trial divisor: the divisor's top two limbs as one 64-bit word.
	d := v[0]<<limbBits | v[1]
	for j := 1; j < DivisorWords; j++ {
		if allZero(u[j-1 : DividendWords-1]) {
			break
		}
		qh, _ := bits.Div64(u[j-1], u[j]<<limbBits|u[j+1], d)
		if qh > limbMask {
			qh = limbMask
		}
		if qh != 0 && mulSubAt(&u, j, &v, qh) {
			qh--
			addAt(&u, j, &v)
		}
		q[j] = qh
	}

	qHi, qLo = pack128(q[1:])

	// Remainder lives in u[4..8]; u[9] stays zero. The guard bit of the
	// infinite quotient is set iff twice the remainder reaches the
	// divisor; a tie between them implies an exact quotient, which ends
	// with a zero remainder instead, so this realizes round-half-even.
	if allZero(u[4:]) {
		return qHi, qLo, false, false, expDec
	}
	var r2 [DivisorWords]uint64
	shl1Limbs(r2[:], u[4:9])
	return qHi, qLo, cmpLimbs(r2[:], v[:]) >= 0, true, expDec
}

// mulSubAt subtracts digit*v from the six limbs of u ending at j+4 and
// reports whether the span underflowed.
func mulSubAt(u *[DividendWords]uint64, j int, v *[DivisorWords]uint64, digit uint64) bool {
	carry := uint64(0)
	for i := DivisorWords - 1; i >= 0; i-- {
		p := digit*v[i] + carry
		d := u[j+i] - p&limbMask
		u[j+i] = d & limbMask
		carry = p>>limbBits + d>>63
	}
	d := u[j-1] - carry
	u[j-1] = d & limbMask
	return d>>63 != 0
}

// addAt adds v back over the same six-limb span; the final carry cancels
// the borrow left by mulSubAt.
func addAt(u *[DividendWords]uint64, j int, v *[DivisorWords]uint64) {
	carry := uint64(0)
	for i := DivisorWords - 1; i >= 0; i-- {
		s := u[j+i] + v[i] + carry
		u[j+i] = s & limbMask
		carry = s >> limbBits
	}
	u[j-1] = (u[j-1] + carry) & limbMask
}
