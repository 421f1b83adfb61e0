// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClass(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		q Quadruple
		c Class
	}{
		{Quadruple{}, ClassZero},
		{FromParts(true, 0, 0, 0), ClassZero},
		{FromParts(false, 0, 0, 1), ClassSubnormal},
		{FromParts(true, 0, 1<<63, 0), ClassSubnormal},
		{FromParts(false, 0, ^uint64(0), ^uint64(0)), ClassSubnormal},
		{FromParts(false, expBias, 0, 0), ClassNormal},
		{FromParts(true, 1, 0, 0), ClassNormal},
		{FromParts(false, expMax, ^uint64(0), ^uint64(0)), ClassNormal},
		{FromParts(false, expInf, 0, 0), ClassInf},
		{FromParts(true, expInf, 0, 0), ClassInf},
		{FromParts(false, expInf, 1<<63, 0), ClassNaN},
		{FromParts(true, expInf, 0, 1), ClassNaN},
		{NaN(), ClassNaN},
		{Inf(1), ClassInf},
		{Inf(-1), ClassInf},
		{MaxValue(), ClassNormal},
		{MinValue(), ClassSubnormal},
		{MinNormal(), ClassNormal},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.c, test.q.Class())
		})
	}
}

func TestClassString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c Class
		s string
	}{
		{ClassZero, "zero"},
		{ClassSubnormal, "subnormal"},
		{ClassNormal, "normal"},
		{ClassInf, "infinity"},
		{ClassNaN, "nan"},
		{Class(200), "unknown"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, test.c.String())
		})
	}
}

func TestPredicates(t *testing.T) {
	a := assert.New(t)

	var zeroValue Quadruple
	a.True(zeroValue.IsZero())
	a.False(zeroValue.Signbit())
	a.Equal(Quadruple{}, zeroValue)

	a.True(NaN().IsNaN())
	a.False(NaN().IsInf())
	a.False(NaN().IsZero())

	a.True(Inf(1).IsInf())
	a.False(Inf(1).Signbit())
	a.True(Inf(-1).IsInf())
	a.True(Inf(-1).Signbit())
	a.True(Inf(0).IsInf())
	a.False(Inf(0).Signbit())

	a.True(FromParts(true, 0, 0, 0).IsZero())
	a.True(FromParts(true, 0, 0, 0).Signbit())

	a.False(MinValue().IsZero())
	a.False(MaxValue().IsInf())
}

func TestFromParts(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		neg    bool
		exp    uint32
		hi, lo uint64
	}{
		{false, 0, 0, 0},
		{true, 0, 0, 0},
		{false, expBias, 0, 0},
		{true, expBias + 1, 1 << 63, 0},
		{false, 0, 0, 1},
		{true, expInf, 1 << 63, 0},
		{false, expMax, ^uint64(0), ^uint64(0)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			q := FromParts(test.neg, test.exp, test.hi, test.lo)
			neg, exp, hi, lo := q.Parts()
			a.Equal(test.neg, neg)
			a.Equal(test.exp, exp)
			a.Equal(test.hi, hi)
			a.Equal(test.lo, lo)
		})
	}
}

func TestNegAbs(t *testing.T) {
	a := assert.New(t)

	one := FromInt64(1)
	minusOne := FromInt64(-1)
	a.Equal(minusOne, one.Neg())
	a.Equal(one, minusOne.Neg())
	a.Equal(one, minusOne.Abs())
	a.Equal(one, one.Abs())

	a.Equal(FromParts(true, 0, 0, 0), Quadruple{}.Neg())
	a.Equal(Quadruple{}, FromParts(true, 0, 0, 0).Neg())
	a.Equal(Quadruple{}, FromParts(true, 0, 0, 0).Abs())

	a.Equal(Inf(-1), Inf(1).Neg())
	a.True(NaN().Neg().IsNaN())
	a.True(NaN().Abs().IsNaN())
}

func TestNamedValues(t *testing.T) {
	a := assert.New(t)

	a.Equal(FromParts(false, expMax, ^uint64(0), ^uint64(0)), MaxValue())
	a.Equal(FromParts(false, 0, 0, 1), MinValue())
	a.Equal(FromParts(false, 1, 0, 0), MinNormal())
	a.Equal(FromParts(false, expInf, 1<<63, 0), NaN())
	a.Equal(FromParts(false, expInf, 0, 0), Inf(1))
	a.Equal(FromParts(true, expInf, 0, 0), Inf(-1))

	// the largest finite value is smaller than infinity and the smallest
	// subnormal sits right above zero
	a.Equal(-1, MaxValue().Cmp(Inf(1)))
	a.Equal(1, MinValue().Cmp(Quadruple{}))
	a.Equal(-1, MinValue().Cmp(MinNormal()))
}
