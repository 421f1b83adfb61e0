// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package quadruple implements quadruple-precision binary floating point:
// a 129-bit significand built from an implicit integer bit plus 128 stored
// fraction bits, and a 32-bit biased exponent. Values are immutable,
// arithmetic rounds half to even, and special values follow IEEE-754
// rules: NaN, signed infinities, signed zeros and subnormals.
//
// The zero value of Quadruple is +0.
package quadruple

import "math/bits"

const (
	// expBias offsets stored exponents; a normal value is
	// 1.fraction × 2^(exp-expBias).
	expBias = 0x7FFF_FFFF
	// expInf marks infinities (zero mantissa) and NaNs (non-zero one).
	expInf = 0xFFFF_FFFF
	// expMax is the largest exponent of a finite value.
	expMax = expInf - 1
)

// Class is the kind of a value, derived from its stored fields.
type Class uint8

const (
	ClassZero Class = iota
	ClassSubnormal
	ClassNormal
	ClassInf
	ClassNaN
)

func (c Class) String() string {
	switch c {
	case ClassZero:
		return "zero"
	case ClassSubnormal:
		return "subnormal"
	case ClassNormal:
		return "normal"
	case ClassInf:
		return "infinity"
	case ClassNaN:
		return "nan"
	}
	return "unknown"
}

// Quadruple is a quadruple-precision binary floating-point value.
// It is comparable; == is bit identity, use Cmp for numeric order.
type Quadruple struct {
	neg    bool
	exp    uint32
	mantHi uint64
	mantLo uint64
}

// FromParts assembles a value from raw storage fields. Any combination is
// a valid value: exponent 0 holds zeros and subnormals, 0xFFFFFFFF holds
// infinities (zero mantissa) and NaNs.
func FromParts(neg bool, exp uint32, mantHi, mantLo uint64) Quadruple {
	return Quadruple{neg: neg, exp: exp, mantHi: mantHi, mantLo: mantLo}
}

// Parts returns the raw storage fields.
func (q Quadruple) Parts() (neg bool, exp uint32, mantHi, mantLo uint64) {
	return q.neg, q.exp, q.mantHi, q.mantLo
}

// Class returns the kind of the value.
func (q Quadruple) Class() Class {
	switch q.exp {
	case 0:
		if q.mantHi|q.mantLo == 0 {
			return ClassZero
		}
		return ClassSubnormal
	case expInf:
		if q.mantHi|q.mantLo == 0 {
			return ClassInf
		}
		return ClassNaN
	}
	return ClassNormal
}

// IsNaN reports whether the value is a NaN.
func (q Quadruple) IsNaN() bool {
	return q.exp == expInf && q.mantHi|q.mantLo != 0
}

// IsInf reports whether the value is an infinity.
func (q Quadruple) IsInf() bool {
	return q.exp == expInf && q.mantHi|q.mantLo == 0
}

// IsZero reports whether the value is a zero of either sign.
func (q Quadruple) IsZero() bool {
	return q.exp == 0 && q.mantHi|q.mantLo == 0
}

// Signbit reports whether the sign bit is set. It is true for -0 and may
// be true for a NaN.
func (q Quadruple) Signbit() bool {
	return q.neg
}

// Neg returns the value with its sign bit flipped. Like the IEEE negate
// operation it applies to every class, including zeros and NaN.
func (q Quadruple) Neg() Quadruple {
	q.neg = !q.neg
	return q
}

// Abs returns the value with its sign bit cleared.
func (q Quadruple) Abs() Quadruple {
	q.neg = false
	return q
}

// NaN returns the canonical quiet NaN.
func NaN() Quadruple {
	return Quadruple{exp: expInf, mantHi: 1 << 63}
}

// Inf returns an infinity: positive if sign >= 0, negative otherwise.
func Inf(sign int) Quadruple {
	return Quadruple{neg: sign < 0, exp: expInf}
}

// MaxValue returns the largest finite value,
// (2-2^-128) × 2^2147483647.
func MaxValue() Quadruple {
	return Quadruple{exp: expMax, mantHi: ^uint64(0), mantLo: ^uint64(0)}
}

// MinValue returns the smallest positive value, the subnormal 2^-2147483774.
func MinValue() Quadruple {
	return Quadruple{mantLo: 1}
}

// MinNormal returns the smallest positive normal value, 2^-2147483646.
func MinNormal() Quadruple {
	return Quadruple{exp: 1}
}

func zero(neg bool) Quadruple {
	return Quadruple{neg: neg}
}

func inf(neg bool) Quadruple {
	return Quadruple{neg: neg, exp: expInf}
}

// unpackFin returns the sign, unbiased exponent and 128 fraction bits of
// a finite non-zero value, the implicit integer bit materialized: the
// value is ±1.hi:lo × 2^e. Subnormals come out normalized.
func (q Quadruple) unpackFin() (neg bool, e int64, hi, lo uint64) {
	if q.exp != 0 {
		return q.neg, int64(q.exp) - expBias, q.mantHi, q.mantLo
	}
	lz := leadingZeros128(q.mantHi, q.mantLo)
	hi, lo = shiftLeft128(q.mantHi, q.mantLo, uint(lz+1))
	return q.neg, int64(-lz) - expBias, hi, lo
}

func leadingZeros128(hi, lo uint64) int {
	if hi != 0 {
		return bits.LeadingZeros64(hi)
	}
	return 64 + bits.LeadingZeros64(lo)
}

// shiftLeft128 shifts a 128-bit value left by n (0 < n <= 128), dropping
// the bits that leave the top word.
func shiftLeft128(hi, lo uint64, n uint) (uint64, uint64) {
	if n >= 64 {
		return lo << (n - 64), 0
	}
	return hi<<n | lo>>(64-n), lo << n
}
