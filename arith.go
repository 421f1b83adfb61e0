// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"math/bits"

	"github.com/avdva/quadruple/internal/limbutil"
)

// Add returns q + o rounded half to even.
func (q Quadruple) Add(o Quadruple) Quadruple {
	if q.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if q.IsInf() {
		if o.IsInf() && q.neg != o.neg {
			return NaN()
		}
		return q
	}
	if o.IsInf() {
		return o
	}
	if q.IsZero() {
		if o.IsZero() {
			return zero(q.neg && o.neg)
		}
		return o
	}
	if o.IsZero() {
		return q
	}
	qn, qe, qh, ql := q.unpackFin()
	on, oe, oh, ol := o.unpackFin()
	if qn == on {
		return addMag(qn, qe, qh, ql, oe, oh, ol)
	}
	switch cmpMag(qe, qh, ql, oe, oh, ol) {
	case 0:
		// exact cancellation rounds to +0
		return zero(false)
	case 1:
		return subMag(qn, qe, qh, ql, oe, oh, ol)
	default:
		return subMag(on, oe, oh, ol, qe, qh, ql)
	}
}

// Sub returns q - o rounded half to even.
func (q Quadruple) Sub(o Quadruple) Quadruple {
	return q.Add(o.Neg())
}

// Mul returns q * o rounded half to even.
func (q Quadruple) Mul(o Quadruple) Quadruple {
	if q.IsNaN() || o.IsNaN() {
		return NaN()
	}
	neg := q.neg != o.neg
	if q.IsInf() {
		if o.IsZero() {
			return NaN()
		}
		return inf(neg)
	}
	if o.IsInf() {
		if q.IsZero() {
			return NaN()
		}
		return inf(neg)
	}
	if q.IsZero() || o.IsZero() {
		return zero(neg)
	}
	_, qe, qh, ql := q.unpackFin()
	_, oe, oh, ol := o.unpackFin()

	// (2^128+f1)*(2^128+f2) = 2^256 + 2^128*(f1+f2) + f1*f2,
	// a 257- or 258-bit product of the two full significands.
	p3, p2, p1, p0 := limbutil.Mul128(qh, ql, oh, ol)
	sl, c := bits.Add64(ql, ol, 0)
	sh, ipc := bits.Add64(qh, oh, c)
	w2, c := bits.Add64(p2, sl, 0)
	w3, c := bits.Add64(p3, sh, c)
	w4 := 1 + ipc + c

	e := qe + oe
	var hi, lo uint64
	var guard, sticky bool
	if w4 > 1 { // product in [2, 4)
		hi = w4<<63 | w3>>1
		lo = w3<<63 | w2>>1
		guard = w2&1 != 0
		sticky = p1 != 0 || p0 != 0
		e++
	} else {
		hi = w3
		lo = w2
		guard = p1>>63 != 0
		sticky = p1&(1<<63-1) != 0 || p0 != 0
	}
	return roundAndPack(neg, e+expBias, hi, lo, guard, sticky)
}

// Div returns q / o rounded half to even. Division by zero yields
// an infinity, and 0/0 yields NaN.
func (q Quadruple) Div(o Quadruple) Quadruple {
	if q.IsNaN() || o.IsNaN() {
		return NaN()
	}
	neg := q.neg != o.neg
	if q.IsInf() {
		if o.IsInf() {
			return NaN()
		}
		return inf(neg)
	}
	if o.IsInf() {
		return zero(neg)
	}
	if q.IsZero() {
		if o.IsZero() {
			return NaN()
		}
		return zero(neg)
	}
	if o.IsZero() {
		return inf(neg)
	}
	_, qe, qh, ql := q.unpackFin()
	_, oe, oh, ol := o.unpackFin()

	hi, lo, guard, sticky, expDec := limbutil.Div129(qh, ql, oh, ol)
	return roundAndPack(neg, qe-oe-expDec+expBias, hi, lo, guard, sticky)
}

// Sqrt returns the square root of q rounded half to even.
// The root of a negative value is NaN, and Sqrt(±0) = ±0.
func (q Quadruple) Sqrt() Quadruple {
	if q.IsNaN() {
		return NaN()
	}
	if q.IsZero() {
		return q
	}
	if q.neg {
		return NaN()
	}
	if q.IsInf() {
		return q
	}
	_, e, hi, lo := q.unpackFin()
	ip := uint64(1)
	if e&1 != 0 {
		// shift the significand into [2, 4) so that the exponent is even
		ip = 2 | hi>>63
		hi = hi<<1 | lo>>63
		lo <<= 1
		e--
	}
	rh, rl, guard, sticky := limbutil.Sqrt129(ip, hi, lo)
	return roundAndPack(false, e/2+expBias, rh, rl, guard, sticky)
}

// cmpMag compares two finite non-zero magnitudes in normalized
// (exponent, fraction) form.
func cmpMag(e1 int64, h1, l1 uint64, e2 int64, h2, l2 uint64) int {
	switch {
	case e1 != e2:
		if e1 > e2 {
			return 1
		}
		return -1
	case h1 != h2:
		if h1 > h2 {
			return 1
		}
		return -1
	case l1 != l2:
		if l1 > l2 {
			return 1
		}
		return -1
	}
	return 0
}

// addMag adds two finite non-zero magnitudes of the same sign.
// The significands are widened by three low guard bits so that the
// alignment shift and the final rounding stay separate.
func addMag(neg bool, e1 int64, h1, l1 uint64, e2 int64, h2, l2 uint64) Quadruple {
	if e1 < e2 {
		e1, e2 = e2, e1
		h1, h2 = h2, h1
		l1, l2 = l2, l1
	}
	d := e1 - e2
	if d >= 130 {
		// the smaller operand is far below one ulp and only sets the sticky bit
		return roundAndPack(neg, e1+expBias, h1, l1, false, true)
	}
	b2, b1, b0 := ext132(h1, l1)
	s2, s1, s0 := ext132(h2, l2)
	var dropped bool
	if d > 0 {
		s2, s1, s0, dropped = shiftRightExt(s2, s1, s0, uint(d))
	}
	var c uint64
	b0, c = bits.Add64(b0, s0, 0)
	b1, c = bits.Add64(b1, s1, c)
	b2 = b2 + s2 + c

	e := e1
	var hi, lo uint64
	var guard, sticky bool
	if b2 >= 16 { // sum in [2, 4)
		hi = b2<<60 | b1>>4
		lo = b1<<60 | b0>>4
		guard = b0>>3&1 != 0
		sticky = b0&7 != 0 || dropped
		e++
	} else {
		hi = b2<<61 | b1>>3
		lo = b1<<61 | b0>>3
		guard = b0>>2&1 != 0
		sticky = b0&3 != 0 || dropped
	}
	return roundAndPack(neg, e+expBias, hi, lo, guard, sticky)
}

// subMag subtracts the strictly smaller magnitude (e2, h2, l2) from
// (e1, h1, l1). The result carries the sign of the larger one.
func subMag(neg bool, e1 int64, h1, l1 uint64, e2 int64, h2, l2 uint64) Quadruple {
	d := e1 - e2
	if d >= 131 {
		// the subtrahend is below a quarter ulp, so the minuend is
		// closer to the true result than to any neighbor
		return roundAndPack(neg, e1+expBias, h1, l1, false, false)
	}
	if d == 0 {
		l, bor := bits.Sub64(l1, l2, 0)
		h, _ := bits.Sub64(h1, h2, bor)
		// the implicit bits cancel, and h:l is non-zero after the
		// magnitude comparison in Add
		lz := leadingZeros128(h, l)
		h, l = shiftLeft128(h, l, uint(lz+1))
		return roundAndPack(neg, e1-int64(lz)-1+expBias, h, l, false, false)
	}
	b2, b1, b0 := ext132(h1, l1)
	s2, s1, s0 := ext132(h2, l2)
	s2, s1, s0, dropped := shiftRightExt(s2, s1, s0, uint(d))
	if dropped {
		// jamming the lost fraction into the lowest bit preserves the
		// rounding direction: a shift of up to three keeps the
		// subtraction exact, and any larger shift bounds the
		// cancellation to one bit, so the jam never reaches the guard
		s0 |= 1
	}
	var bor uint64
	b0, bor = bits.Sub64(b0, s0, 0)
	b1, bor = bits.Sub64(b1, s1, bor)
	b2 = b2 - s2 - bor

	n := 131 - topBitExt(b2, b1, b0)
	if n > 0 {
		b2, b1, b0 = shiftLeftExt(b2, b1, b0, uint(n))
	}
	hi := b2<<61 | b1>>3
	lo := b1<<61 | b0>>3
	guard := b0>>2&1 != 0
	sticky := b0&3 != 0 || dropped
	return roundAndPack(neg, e1-int64(n)+expBias, hi, lo, guard, sticky)
}

// ext132 widens a 129-bit significand 1:hi:lo by three zero guard bits.
// The result occupies bits 0..131 of the returned triplet.
func ext132(hi, lo uint64) (x2, x1, x0 uint64) {
	return 8 | hi>>61, hi<<3 | lo>>61, lo << 3
}

// shiftRightExt shifts a 132-bit triplet right by n in [1, 131] and
// reports whether any non-zero bits were shifted out.
func shiftRightExt(x2, x1, x0 uint64, n uint) (r2, r1, r0 uint64, dropped bool) {
	switch {
	case n < 64:
		dropped = x0&(1<<n-1) != 0
		r0 = x0>>n | x1<<(64-n)
		r1 = x1>>n | x2<<(64-n)
		r2 = x2 >> n
	case n < 128:
		m := n - 64
		dropped = x0 != 0 || x1&(1<<m-1) != 0
		r0 = x1>>m | x2<<(64-m)
		r1 = x2 >> m
	default:
		m := n - 128
		dropped = x0 != 0 || x1 != 0 || x2&(1<<m-1) != 0
		r0 = x2 >> m
	}
	return r2, r1, r0, dropped
}

// shiftLeftExt shifts a triplet left by n in [1, 131]. Bits shifted
// above position 191 are lost, which the callers never produce.
func shiftLeftExt(x2, x1, x0 uint64, n uint) (r2, r1, r0 uint64) {
	switch {
	case n < 64:
		r2 = x2<<n | x1>>(64-n)
		r1 = x1<<n | x0>>(64-n)
		r0 = x0 << n
	case n < 128:
		m := n - 64
		r2 = x1<<m | x0>>(64-m)
		r1 = x0 << m
	default:
		r2 = x0 << (n - 128)
	}
	return r2, r1, r0
}

// topBitExt returns the position of the highest set bit of a non-zero
// triplet.
func topBitExt(x2, x1, x0 uint64) int {
	switch {
	case x2 != 0:
		return 191 - bits.LeadingZeros64(x2)
	case x1 != 0:
		return 127 - bits.LeadingZeros64(x1)
	default:
		return 63 - bits.LeadingZeros64(x0)
	}
}
