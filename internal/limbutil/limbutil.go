// Package limbutil implements fixed-size limb arithmetic for 129-bit
// significands. Significands travel as an implicit integer bit plus two
// 64-bit fraction words; the division kernel unpacks them into arrays of
// 32-bit limbs kept in 64-bit slots so that carries and borrows never
// leave the slot.
package limbutil

import "math/bits"

const (
	// DivisorWords is the size of the divisor buffer: one integer limb
	// followed by four fraction limbs.
	DivisorWords = 5
	// DividendWords is the size of the dividend/remainder buffer.
	DividendWords = 10

	limbBits = 32
	limbMask = 1<<limbBits - 1
)

// unpack129 splits a significand with integer part ip (1..3) and fraction
// words hi, lo into 32-bit limbs, most significant first.
func unpack129(ip, hi, lo uint64, dst []uint64) {
	dst[0] = ip
	dst[1] = hi >> limbBits
	dst[2] = hi & limbMask
	dst[3] = lo >> limbBits
	dst[4] = lo & limbMask
}

// pack128 reassembles four fraction limbs into two 64-bit words.
func pack128(l []uint64) (hi, lo uint64) {
	return l[0]<<limbBits | l[1], l[2]<<limbBits | l[3]
}

// cmpLimbs compares two equally long limb slices.
func cmpLimbs(a, b []uint64) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// subLimbs subtracts b from a in place and reports whether a borrow
// left the top limb.
func subLimbs(a, b []uint64) bool {
	var borrow uint64
	for i := len(a) - 1; i >= 0; i-- {
		d := a[i] - b[i] - borrow
		a[i] = d & limbMask
		borrow = d >> 63
	}
	return borrow != 0
}

// shl1Limbs writes a<<1 to dst. The top limb may grow beyond 32 bits by
// one; callers give dst the same length as a.
func shl1Limbs(dst, a []uint64) {
	carry := uint64(0)
	for i := len(a) - 1; i >= 0; i-- {
		v := a[i]<<1 | carry
		dst[i] = v & limbMask
		carry = v >> limbBits
	}
	dst[0] |= carry << limbBits
}

func allZero(a []uint64) bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}

// Mul128 returns the full 256-bit product of two 128-bit values as four
// 64-bit words, most significant first.
func Mul128(aHi, aLo, bHi, bLo uint64) (p3, p2, p1, p0 uint64) {
	hhHi, hhLo := bits.Mul64(aHi, bHi)
	hlHi, hlLo := bits.Mul64(aHi, bLo)
	lhHi, lhLo := bits.Mul64(aLo, bHi)
	llHi, llLo := bits.Mul64(aLo, bLo)

	p0 = llLo
	m1, c1 := bits.Add64(llHi, hlLo, 0)
	p1, c2 := bits.Add64(m1, lhLo, 0)
	m2, c3 := bits.Add64(hhLo, hlHi, 0)
	m3, c4 := bits.Add64(m2, lhHi, c1)
	p2, c5 := bits.Add64(m3, c2, 0)
	p3 = hhHi + c3 + c4 + c5
	return p3, p2, p1, p0
}
