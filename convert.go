// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"math"
	"math/bits"
)

// Float64 returns the nearest float64, rounding half to even. Values
// beyond the float64 range become infinities, and values below half of
// the smallest float64 subnormal collapse to zero.
func (q Quadruple) Float64() float64 {
	switch q.Class() {
	case ClassNaN:
		return math.NaN()
	case ClassInf:
		if q.neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case ClassZero:
		if q.neg {
			return math.Copysign(0, -1)
		}
		return 0
	}
	neg, e, h, l := q.unpackFin()
	var sign uint64
	if neg {
		sign = 1 << 63
	}
	if e > 1023 {
		return math.Float64frombits(sign | 0x7FF<<52)
	}
	if e < -1022 {
		n := -1022 - e
		if n > 53 {
			return math.Float64frombits(sign)
		}
		_, m, g, s := shiftRight129(h, l, uint(76+n))
		if g && (s || m&1 != 0) {
			m++
		}
		// m == 1<<52 carries into the exponent field, giving the
		// smallest normal float64
		return math.Float64frombits(sign | m)
	}
	m := uint64(1)<<52 | h>>12
	g := h>>11&1 != 0
	s := h&(1<<11-1) != 0 || l != 0
	if g && (s || m&1 != 0) {
		m++
		if m == 1<<53 {
			m >>= 1
			e++
			if e > 1023 {
				return math.Float64frombits(sign | 0x7FF<<52)
			}
		}
	}
	return math.Float64frombits(sign | uint64(e+1023)<<52 | m&(1<<52-1))
}

// Float32 returns the nearest float32, rounding half to even.
func (q Quadruple) Float32() float32 {
	switch q.Class() {
	case ClassNaN:
		return float32(math.NaN())
	case ClassInf:
		if q.neg {
			return float32(math.Inf(-1))
		}
		return float32(math.Inf(1))
	case ClassZero:
		if q.neg {
			return float32(math.Copysign(0, -1))
		}
		return 0
	}
	neg, e, h, l := q.unpackFin()
	var sign uint32
	if neg {
		sign = 1 << 31
	}
	if e > 127 {
		return math.Float32frombits(sign | 0xFF<<23)
	}
	if e < -126 {
		n := -126 - e
		if n > 24 {
			return math.Float32frombits(sign)
		}
		_, m, g, s := shiftRight129(h, l, uint(105+n))
		if g && (s || m&1 != 0) {
			m++
		}
		return math.Float32frombits(sign | uint32(m))
	}
	m := uint64(1)<<23 | h>>41
	g := h>>40&1 != 0
	s := h&(1<<40-1) != 0 || l != 0
	if g && (s || m&1 != 0) {
		m++
		if m == 1<<24 {
			m >>= 1
			e++
			if e > 127 {
				return math.Float32frombits(sign | 0xFF<<23)
			}
		}
	}
	return math.Float32frombits(sign | uint32(e+127)<<23 | uint32(m&(1<<23-1)))
}

// FromFloat64 converts a float64 exactly: every float64 value, normal or
// subnormal, is representable.
func FromFloat64(f float64) Quadruple {
	b := math.Float64bits(f)
	neg := b>>63 != 0
	be := int64(b >> 52 & 0x7FF)
	frac := b & (1<<52 - 1)
	switch {
	case be == 0x7FF:
		if frac != 0 {
			return NaN()
		}
		return inf(neg)
	case be == 0 && frac == 0:
		return zero(neg)
	case be == 0:
		// subnormal: normalize the 52-bit fraction
		lz := bits.LeadingZeros64(frac)
		return Quadruple{
			neg:    neg,
			exp:    uint32(-1011 - int64(lz) + expBias),
			mantHi: frac << (uint(lz) + 1),
		}
	}
	return Quadruple{
		neg:    neg,
		exp:    uint32(be - 1023 + expBias),
		mantHi: frac << 12,
	}
}

// FromInt64 converts an integer exactly.
func FromInt64(i int64) Quadruple {
	if i == 0 {
		return Quadruple{}
	}
	neg := i < 0
	u := uint64(i)
	if neg {
		u = -u
	}
	return fromUintMag(neg, u)
}

// FromUint64 converts an unsigned integer exactly.
func FromUint64(u uint64) Quadruple {
	if u == 0 {
		return Quadruple{}
	}
	return fromUintMag(false, u)
}

func fromUintMag(neg bool, u uint64) Quadruple {
	lz := bits.LeadingZeros64(u)
	p := int64(63 - lz)
	return Quadruple{
		neg:    neg,
		exp:    uint32(p + expBias),
		mantHi: u << (uint(lz) + 1),
	}
}

// Int64 returns the integer part of the value. NaN maps to zero, and
// values outside the int64 range saturate at the nearest bound.
func (q Quadruple) Int64() int64 {
	if q.IsNaN() {
		return 0
	}
	if q.IsInf() {
		if q.neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	if q.IsZero() {
		return 0
	}
	neg, e, h, _ := q.unpackFin()
	if e < 0 {
		return 0
	}
	if e >= 64 {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	u := uint64(1)<<uint(e) | h>>uint(64-e)
	if neg {
		if u > 1<<63 {
			return math.MinInt64
		}
		return -int64(u) // u == 1<<63 wraps to MinInt64
	}
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

// Int32 returns the integer part of the value. NaN maps to zero, and
// values outside the int32 range saturate at the nearest bound.
func (q Quadruple) Int32() int32 {
	if q.IsNaN() {
		return 0
	}
	if q.IsInf() {
		if q.neg {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	if q.IsZero() {
		return 0
	}
	neg, e, h, _ := q.unpackFin()
	if e < 0 {
		return 0
	}
	if e >= 32 {
		if neg {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	u := uint64(1)<<uint(e) | h>>uint(64-e)
	if neg {
		if u >= 1<<31 {
			return math.MinInt32
		}
		return -int32(u)
	}
	if u > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(u)
}
