// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"fmt"
	"io"
	"strings"

	"github.com/avdva/quadruple/internal/strutil"
	"github.com/shopspring/decimal"
)

const delim = '.'

// maxStringDigits is the longest significand String ever prints. Forty
// digits always pin down a value: the digit approximation is three
// orders of magnitude more precise than half an ulp of the last digit.
const maxStringDigits = 40

// FromString parses a decimal literal with an optional sign, decimal
// point and e/E exponent, or one of "NaN", "Inf", "Infinity", matched
// case insensitively. The value is rounded half to even. Malformed
// input yields an error carrying the offending position.
func FromString(s string) (Quadruple, error) {
	p, err := strutil.Parse(s)
	if err != nil {
		return Quadruple{}, err
	}
	switch p.Kind {
	case strutil.KindNaN:
		return NaN(), nil
	case strutil.KindInf:
		return inf(p.Neg), nil
	}
	return fromDecimalParts(p.Neg, p.Digits, p.Exp), nil
}

// MustFromString is like FromString, but panics on malformed input.
func MustFromString(s string) Quadruple {
	q, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return q
}

// String returns the shortest decimal string that parses back to the
// exact same value. Special values read "NaN", "Infinity" and
// "-Infinity"; a negative zero keeps its sign.
func (q Quadruple) String() string {
	switch q.Class() {
	case ClassNaN:
		return "NaN"
	case ClassInf:
		if q.neg {
			return "-Infinity"
		}
		return "Infinity"
	case ClassZero:
		if q.neg {
			return "-0"
		}
		return "0"
	}
	neg, e, h, l := q.unpackFin()
	x := mulPair(decPair{c: decimal.NewFromBigInt(sigBig(h, l), -38), exp: 38}, pow2Pair(e-128))
	for n := int32(1); ; n++ {
		digits, exp10 := roundDigits(x, n)
		if n == maxStringDigits || fromDecimalParts(neg, digits, exp10) == q {
			return renderDecimal(neg, digits, exp10)
		}
	}
}

// roundDigits rounds the decimal float x to n significant digits and
// returns them with the power of ten of the last digit.
func roundDigits(x decPair, n int32) (string, int64) {
	r := x.c.Round(n - 1)
	exp := x.exp
	if r.Cmp(decTen) >= 0 {
		r = r.Shift(-1)
		exp++
	}
	coef := r.Coefficient().String()
	trimmed := strings.TrimRight(coef, "0")
	g := int64(r.Exponent()) + int64(len(coef)-len(trimmed))
	return trimmed, g + exp
}

// renderDecimal prints digits × 10^exp10 either plainly or, when the
// value's order leaves the [-4, 20] window, in scientific notation with
// at least two exponent digits.
func renderDecimal(neg bool, digits string, exp10 int64) string {
	adj := exp10 + int64(len(digits)) - 1
	var builder strings.Builder
	if neg {
		builder.WriteByte('-')
	}
	switch {
	case adj < -4 || adj > 20:
		builder.WriteByte(digits[0])
		if len(digits) > 1 {
			builder.WriteByte(delim)
			builder.WriteString(digits[1:])
		}
		fmt.Fprintf(&builder, "e%+03d", adj)
	case exp10 >= 0:
		builder.WriteString(digits)
		builder.Write(strutil.Zeros(int(exp10)))
	case adj >= 0:
		builder.WriteString(digits[:int(adj)+1])
		builder.WriteByte(delim)
		builder.WriteString(digits[int(adj)+1:])
	default:
		builder.WriteByte('0')
		builder.WriteByte(delim)
		builder.Write(strutil.Zeros(int(-adj) - 1))
		builder.WriteString(digits)
	}
	return builder.String()
}

// GoString returns debug string representation.
func (q Quadruple) GoString() string {
	return q.String() + fmt.Sprintf(" {%t, 0x%08x, 0x%016x%016x}", q.neg, q.exp, q.mantHi, q.mantLo)
}

// Format implements fmt.Formatter. %v and %s print the String form, %q
// quotes it, and the # flag switches to the debug form.
func (q Quadruple) Format(fs fmt.State, c rune) {
	switch c {
	case 'v':
		if fs.Flag('#') {
			io.WriteString(fs, q.GoString())
			return
		}
		fallthrough
	case 's':
		io.WriteString(fs, q.String())
	case 'q':
		fmt.Fprintf(fs, "%q", q.String())
	default:
		fmt.Fprintf(fs, "%%!%c(quadruple.Quadruple=%s)", c, q.String())
	}
}

// MarshalText implements encoding.TextMarshaler.
func (q Quadruple) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quadruple) UnmarshalText(data []byte) error {
	value, err := FromString(string(data))
	if err != nil {
		return err
	}
	*q = value
	return nil
}

// MarshalJSON marshals the value as a JSON string: NaNs and infinities
// have no JSON number form.
func (q Quadruple) MarshalJSON() ([]byte, error) {
	var builder strings.Builder
	builder.WriteRune('"')
	builder.WriteString(q.String())
	builder.WriteRune('"')
	return []byte(builder.String()), nil
}

// UnmarshalJSON unmarshals a string or a number into a value.
func (q *Quadruple) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty json")
	}
	value, err := FromString(string(data))
	if err != nil {
		return err
	}
	*q = value
	return nil
}
