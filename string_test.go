// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quadruple

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s   string
		err string
		f   Quadruple
	}{
		{"0", "", Quadruple{}},
		{"-0", "", FromParts(true, 0, 0, 0)},
		{"+0.000", "", Quadruple{}},
		{" 12 ", "", FromInt64(12)},
		{"1", "", FromInt64(1)},
		{"-1", "", FromInt64(-1)},
		{"3", "", FromParts(false, expBias+1, 1<<63, 0)},
		{"0.5", "", FromParts(false, expBias-1, 0, 0)},
		{"0.25", "", FromParts(false, expBias-2, 0, 0)},
		{"2.5e-1", "", FromParts(false, expBias-2, 0, 0)},
		{"25e-2", "", FromParts(false, expBias-2, 0, 0)},
		{"0.125", "", FromParts(false, expBias-3, 0, 0)},
		{"1.5", "", FromParts(false, expBias, 1<<63, 0)},
		{"-2.5e1", "", FromParts(true, expBias+4, 0x9000000000000000, 0)},
		{`"1.5"`, "", FromParts(false, expBias, 1<<63, 0)},
		{`"-2.5"`, "", FromParts(true, expBias+1, 1<<62, 0)},
		{"nan", "", NaN()},
		{"NaN", "", NaN()},
		{"-NAN", "", NaN()},
		{"inf", "", Inf(1)},
		{"+Inf", "", Inf(1)},
		{"Infinity", "", Inf(1)},
		{"-INF", "", Inf(-1)},
		{"-infinity", "", Inf(-1)},
		// decimal exponents beyond the binary exponent range saturate
		{"1e700000000", "", Inf(1)},
		{"-1e700000000", "", Inf(-1)},
		{"1e-700000000", "", Quadruple{}},
		{"-1e-700000000", "", FromParts(true, 0, 0, 0)},
		{"1e100000000000000000000", "", Inf(1)},
		{"1e-100000000000000000000", "", Quadruple{}},
		{"", "empty input", Quadruple{}},
		{"   ", "empty input", Quadruple{}},
		{`"`, "empty input", Quadruple{}},
		{"abc", "parsing failed: unexpected symbol 'a' at pos 1", Quadruple{}},
		{"12x4", "parsing failed: unexpected symbol 'x' at pos 3", Quadruple{}},
		{"- 1", "parsing failed: unexpected symbol ' ' at pos 2", Quadruple{}},
		{"--1", "parsing failed: unexpected symbol '-' at pos 2", Quadruple{}},
		{"0.0.0", "parsing failed: unexpected delimeter at pos 4", Quadruple{}},
		{".", "parsing failed: no digits at pos 1", Quadruple{}},
		{"e5", "parsing failed: no digits at pos 1", Quadruple{}},
		{"1e", "parsing failed: error parsing exponent: strconv.ParseInt: parsing \"\": invalid syntax at pos 3", Quadruple{}},
		{"1e+5x", "parsing failed: error parsing exponent: strconv.ParseInt: parsing \"+5x\": invalid syntax at pos 3", Quadruple{}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			f, err := FromString(test.s)
			if len(test.err) == 0 {
				if a.NoError(err) {
					a.Equal(test.f, f)
				}
			} else {
				a.EqualError(err, test.err)
			}
		})
	}
}

func TestMustFromString(t *testing.T) {
	a := assert.New(t)
	a.Equal(FromInt64(1), MustFromString("1"))
	a.Panics(func() {
		MustFromString("oops")
	})
}

func TestString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f Quadruple
		s string
	}{
		{Quadruple{}, "0"},
		{FromParts(true, 0, 0, 0), "-0"},
		{NaN(), "NaN"},
		{Inf(1), "Infinity"},
		{Inf(-1), "-Infinity"},
		{FromInt64(1), "1"},
		{FromInt64(-1), "-1"},
		{FromInt64(123), "123"},
		{MustFromString("1.5"), "1.5"},
		{MustFromString("0.1"), "0.1"},
		{MustFromString("0.25"), "0.25"},
		{MustFromString("-12345.6789"), "-12345.6789"},
		// an integer that does not survive a float64 round trip
		{MustFromString("9007199254740993"), "9007199254740993"},
		{MustFromString("1e20"), "100000000000000000000"},
		{MustFromString("1e21"), "1e+21"},
		{MustFromString("1.5e21"), "1.5e+21"},
		{MustFromString("1e-4"), "0.0001"},
		{MustFromString("1e-5"), "1e-05"},
		{MustFromString("1.5e-5"), "1.5e-05"},
		{MustFromString("-2.5e-7"), "-2.5e-07"},
		{MustFromString("1e-100"), "1e-100"},
		{MustFromString("1e+100"), "1e+100"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, test.f.String())
		})
	}
}

func TestGoString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f Quadruple
		s string
	}{
		{FromInt64(1), "1 {false, 0x7fffffff, 0x00000000000000000000000000000000}"},
		{MustFromString("-1.5"), "-1.5 {true, 0x7fffffff, 0x80000000000000000000000000000000}"},
		{NaN(), "NaN {false, 0xffffffff, 0x80000000000000000000000000000000}"},
		{Quadruple{}, "0 {false, 0x00000000, 0x00000000000000000000000000000000}"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, test.f.GoString())
		})
	}
}

func TestFormat(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		format string
		f      Quadruple
		s      string
	}{
		{"%v", FromInt64(1), "1"},
		{"%s", MustFromString("1.5"), "1.5"},
		{"%q", MustFromString("1.5"), `"1.5"`},
		{"%#v", FromInt64(1), "1 {false, 0x7fffffff, 0x00000000000000000000000000000000}"},
		{"%d", FromInt64(1), "%!d(quadruple.Quadruple=1)"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, fmt.Sprintf(test.format, test.f))
		})
	}
}

func TestMarshalText(t *testing.T) {
	a := assert.New(t)

	data, err := MustFromString("1.5").MarshalText()
	a.NoError(err)
	a.Equal("1.5", string(data))

	var q Quadruple
	a.NoError(q.UnmarshalText([]byte("-2.5")))
	a.Equal(MustFromString("-2.5"), q)

	a.Error(q.UnmarshalText([]byte("bad")))
}

func TestJSON(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f        Quadruple
		expected string
	}{
		{Quadruple{}, `"0"`},
		{FromInt64(1), `"1"`},
		{MustFromString("1.5"), `"1.5"`},
		{MustFromString("-12345.6789"), `"-12345.6789"`},
		{NaN(), `"NaN"`},
		{Inf(-1), `"-Infinity"`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			if data, err := json.Marshal(test.f); a.NoError(err) {
				a.Equal(test.expected, string(data))
				var f Quadruple
				if a.NoError(json.Unmarshal(data, &f)) {
					a.Equal(test.f, f)
				}
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		data string
		err  string
		f    Quadruple
	}{
		{`"1.5"`, "", MustFromString("1.5")},
		{`2.5`, "", MustFromString("2.5")},
		{`-3`, "", FromInt64(-3)},
		{`"NaN"`, "", NaN()},
		{`"x"`, "parsing failed: unexpected symbol 'x' at pos 2", Quadruple{}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			var f Quadruple
			err := f.UnmarshalJSON([]byte(test.data))
			if len(test.err) == 0 {
				if a.NoError(err) {
					a.Equal(test.f, f)
				}
			} else {
				a.EqualError(err, test.err)
			}
		})
	}
}
