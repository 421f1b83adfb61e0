// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmp(t *testing.T) {
	a := assert.New(t)
	ordered := []Quadruple{
		Inf(-1),
		MaxValue().Neg(),
		FromInt64(-3),
		MustFromString("-0.5"),
		MinNormal().Neg(),
		MinValue().Neg(),
		FromParts(true, 0, 0, 0),
		Quadruple{},
		MinValue(),
		MinNormal(),
		MustFromString("0.5"),
		FromInt64(3),
		MaxValue(),
		Inf(1),
		NaN(),
	}
	for i := range ordered {
		for j := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			a.Equal(want, ordered[i].Cmp(ordered[j]), "%d vs %d", i, j)
		}
	}
}

func TestMaxMin(t *testing.T) {
	a := assert.New(t)
	one, two := FromInt64(1), FromInt64(2)
	negZero := FromParts(true, 0, 0, 0)

	a.Equal(two, Max(one, two))
	a.Equal(two, Max(two, one))
	a.Equal(one, Min(one, two))
	a.Equal(one, Min(two, one))
	a.Equal(Quadruple{}, Max(negZero, Quadruple{}))
	a.Equal(negZero, Min(negZero, Quadruple{}))
	a.Equal(Inf(1), Max(MaxValue(), Inf(1)))
	a.True(Max(one, NaN()).IsNaN())
	a.True(Min(one, NaN()).IsNaN())
	a.True(Max(NaN(), NaN()).IsNaN())
}
