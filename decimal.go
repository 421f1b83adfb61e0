// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"errors"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errDecimalNaN   = errors.New("no decimal representation of NaN")
	errDecimalInf   = errors.New("no decimal representation of infinity")
	errDecimalRange = errors.New("exponent out of decimal range")
)

const (
	// exactConvDigits bounds the all-integer conversion path. Longer
	// digit strings and larger exponents go through the power ladder,
	// which is correct to about 57 decimal digits, far below half an
	// ulp of the 129-bit significand.
	exactConvDigits = 20000
	// ladderDigits is how many leading digits the ladder path keeps.
	ladderDigits = 48
	// ladderScale is the number of decimal places kept between ladder
	// multiplications.
	ladderScale = 58
)

var (
	decOne    = decimal.New(1, 0)
	decTwo    = decimal.New(2, 0)
	decTen    = decimal.New(10, 0)
	decHalf   = decimal.New(5, -1)
	dec2To128 = decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 128), 0)
	mask64Big = new(big.Int).SetUint64(math.MaxUint64)
)

// decPair is a decimal float: c * 10^exp with c normalized to [1, 10).
// It extends the int32 exponent range of decimal.Decimal far enough for
// any binary exponent of a value.
type decPair struct {
	c   decimal.Decimal
	exp int64
}

// twoPows[i] holds 2^(2^i), twoNegPows[i] holds 2^-(2^i).
var (
	twoPows    [52]decPair
	twoNegPows [52]decPair
)

func init() {
	twoPows[0] = decPair{c: decTwo}
	twoNegPows[0] = decPair{c: decimal.New(5, 0), exp: -1}
	for i := 1; i < len(twoPows); i++ {
		twoPows[i] = mulPair(twoPows[i-1], twoPows[i-1])
		twoNegPows[i] = mulPair(twoNegPows[i-1], twoNegPows[i-1])
	}
}

func mulPair(a, b decPair) decPair {
	c := a.c.Mul(b.c).Round(ladderScale)
	exp := a.exp + b.exp
	if c.Cmp(decTen) >= 0 {
		c = c.Shift(-1)
		exp++
	}
	return decPair{c: c, exp: exp}
}

// pow2Pair returns 2^n by binary exponentiation over the tables.
func pow2Pair(n int64) decPair {
	tbl := &twoPows
	if n < 0 {
		tbl = &twoNegPows
		n = -n
	}
	r := decPair{c: decOne}
	for i := 0; n != 0; i, n = i+1, n>>1 {
		if n&1 != 0 {
			r = mulPair(r, tbl[i])
		}
	}
	return r
}

// fromDecimalParts rounds digits * 10^exp10 to the nearest value. The
// digit string carries no leading or trailing zeros; an empty string
// means zero.
func fromDecimalParts(neg bool, digits string, exp10 int64) Quadruple {
	if digits == "" {
		return zero(neg)
	}
	if len(digits) <= exactConvDigits && exp10 >= -exactConvDigits && exp10 <= exactConvDigits {
		return fromDecimalExact(neg, digits, exp10)
	}
	return fromDecimalLadder(neg, digits, exp10, false)
}

// fromDecimalExact scales the digits to a 131- or 132-bit integer
// quotient, so that the significand, the guard bit and the sticky bit of
// the exact value can be read off directly.
func fromDecimalExact(neg bool, digits string, exp10 int64) Quadruple {
	num, _ := new(big.Int).SetString(digits, 10)
	den := big.NewInt(1)
	if exp10 > 0 {
		num.Mul(num, pow10Big(exp10))
	} else if exp10 < 0 {
		den = pow10Big(-exp10)
	}
	s := int64(den.BitLen() - num.BitLen() + 131)
	if s >= 0 {
		num.Lsh(num, uint(s))
	} else {
		den = new(big.Int).Lsh(den, uint(-s))
	}
	var quo, rem big.Int
	quo.QuoRem(num, den, &rem)

	t := quo.BitLen() // 131 or 132
	guard := quo.Bit(t-130) == 1
	sticky := rem.Sign() != 0
	for i := 0; i < t-130 && !sticky; i++ {
		sticky = quo.Bit(i) == 1
	}
	quo.Rsh(&quo, uint(t-129))
	lo := new(big.Int).And(&quo, mask64Big).Uint64()
	hi := new(big.Int).And(new(big.Int).Rsh(&quo, 64), mask64Big).Uint64()
	e := int64(t) - 1 - s
	return roundAndPack(neg, e+expBias, hi, lo, guard, sticky)
}

// fromDecimalLadder multiplies the leading digits by a power of two from
// the ladder so that the scaled value lands in [1, 2), then reads the
// significand off the first 129 binary digits.
func fromDecimalLadder(neg bool, digits string, exp10 int64, sticky bool) Quadruple {
	if len(digits) > ladderDigits {
		exp10 += int64(len(digits) - ladderDigits)
		digits = digits[:ladderDigits]
		sticky = true
	}
	coef, _ := new(big.Int).SetString(digits, 10)
	x := decPair{
		c:   decimal.NewFromBigInt(coef, int32(-(len(digits) - 1))),
		exp: exp10 + int64(len(digits)-1),
	}

	cf, _ := x.c.Float64()
	e2 := int64(math.Floor((float64(x.exp) + math.Log10(cf)) * math.Log2(10)))
	m := mulPair(x, pow2Pair(-e2))
	md := m.c.Shift(int32(m.exp)) // the estimate is off by at most two
	for md.Cmp(decTwo) >= 0 {
		md = md.Mul(decHalf)
		e2++
	}
	for md.Cmp(decOne) < 0 {
		md = md.Mul(decTwo)
		e2--
	}

	s := md.Mul(dec2To128)
	ip := s.Floor()
	f := s.Sub(ip)
	guard := f.Cmp(decHalf) >= 0
	if !sticky {
		sticky = f.Sign() != 0
	}
	sig := decInt(ip)
	lo := new(big.Int).And(sig, mask64Big).Uint64()
	hi := new(big.Int).And(sig.Rsh(sig, 64), mask64Big).Uint64()
	return roundAndPack(neg, e2+expBias, hi, lo, guard, sticky)
}

// decInt returns the integer value of a decimal with no fractional part.
func decInt(d decimal.Decimal) *big.Int {
	bi := new(big.Int).Set(d.Coefficient())
	switch e := int64(d.Exponent()); {
	case e > 0:
		bi.Mul(bi, pow10Big(e))
	case e < 0:
		bi.Quo(bi, pow10Big(-e))
	}
	return bi
}

func pow10Big(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// Decimal converts the value to an arbitrary-precision decimal exactly.
// NaNs and infinities have no decimal form, and a subnormal so small
// that its scale exceeds the int32 exponent range of decimal.Decimal
// yields an error.
func (q Quadruple) Decimal() (decimal.Decimal, error) {
	switch q.Class() {
	case ClassNaN:
		return decimal.Decimal{}, errDecimalNaN
	case ClassInf:
		return decimal.Decimal{}, errDecimalInf
	case ClassZero:
		return decimal.Zero, nil
	}
	neg, e, h, l := q.unpackFin()
	sig := sigBig(h, l)
	k := e - 128
	var d decimal.Decimal
	switch {
	case k >= 0:
		d = decimal.NewFromBigInt(sig.Lsh(sig, uint(k)), 0)
	case k < math.MinInt32:
		return decimal.Decimal{}, errDecimalRange
	default:
		// sig * 2^k = sig * 5^-k * 10^k
		sig.Mul(sig, new(big.Int).Exp(big.NewInt(5), big.NewInt(-k), nil))
		d = decimal.NewFromBigInt(sig, int32(k))
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// FromDecimal rounds an arbitrary-precision decimal to the nearest
// value. Every decimal is covered: overly large ones become infinities
// and overly small ones flush to zero.
func FromDecimal(d decimal.Decimal) Quadruple {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return Quadruple{}
	}
	neg := coef.Sign() < 0
	digits := new(big.Int).Abs(coef).String()
	exp10 := int64(d.Exponent())
	trimmed := strings.TrimRight(digits, "0")
	exp10 += int64(len(digits) - len(trimmed))
	return fromDecimalParts(neg, trimmed, exp10)
}

// sigBig assembles the full 129-bit significand 1:hi:lo.
func sigBig(hi, lo uint64) *big.Int {
	b := new(big.Int).SetUint64(1)
	b.Lsh(b, 64).Or(b, new(big.Int).SetUint64(hi))
	b.Lsh(b, 64).Or(b, new(big.Int).SetUint64(lo))
	return b
}
