package limbutil

import "math/bits"

// Sqrt129 computes the square root of a significand in [1, 4) given as an
// integer part (1..3, already doubled by the caller for odd exponents) and
// two fraction words. It returns the 128 fraction bits of the root, which
// lies in [1, 2), plus the guard and sticky bits of the infinite root.
//
// Restoring square root, one result bit per step. The remainder never
// exceeds twice the partial root, so three 64-bit words hold every
// intermediate. The guard bit is set iff the final remainder exceeds the
// root: equality would make (root+1/2)² integral, which cannot happen, so
// ties are impossible and the single comparison realizes round-half-even.
func Sqrt129(ip, hi, lo uint64) (rHi, rLo uint64, guard, sticky bool) {
	var rem, root, t [3]uint64
	for k := 128; k >= 0; k-- {
		shl192(&rem, 2)
		rem[0] |= sigPair(ip, hi, lo, k)
		t = root
		shl192(&t, 2)
		t[0] |= 1
		if cmp192(&rem, &t) >= 0 {
			sub192(&rem, &t)
			shl192(&root, 1)
			root[0] |= 1
		} else {
			shl192(&root, 1)
		}
	}
	// root = floor(sqrt(sig << 128)) with its top bit in root[2],
	// rem = sig<<128 - root².
	guard = cmp192(&rem, &root) > 0
	sticky = rem[0]|rem[1]|rem[2] != 0
	return root[1], root[0], guard, sticky
}

// sigPair extracts bits 2k+1 and 2k of sig<<128, where sig is the 130-bit
// value ip:hi:lo. Bits below 128 of the shifted value are zero.
func sigPair(ip, hi, lo uint64, k int) uint64 {
	if k < 64 {
		return 0
	}
	p := uint(2*k - 128)
	return sigBit(ip, hi, lo, p+1)<<1 | sigBit(ip, hi, lo, p)
}

func sigBit(ip, hi, lo uint64, p uint) uint64 {
	switch {
	case p >= 128:
		return ip >> (p - 128) & 1
	case p >= 64:
		return hi >> (p - 64) & 1
	default:
		return lo >> p & 1
	}
}

// The [3]uint64 triplets below are little-endian 192-bit integers.

func shl192(x *[3]uint64, n uint) {
	x[2] = x[2]<<n | x[1]>>(64-n)
	x[1] = x[1]<<n | x[0]>>(64-n)
	x[0] <<= n
}

func cmp192(a, b *[3]uint64) int {
	for i := 2; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func sub192(a, b *[3]uint64) {
	var borrow uint64
	a[0], borrow = bits.Sub64(a[0], b[0], 0)
	a[1], borrow = bits.Sub64(a[1], b[1], borrow)
	a[2], _ = bits.Sub64(a[2], b[2], borrow)
}
