// Package strutil scans decimal floating-point literals into their sign,
// digits and exponent, with position-carrying errors.
package strutil

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	delim = '.'

	// expClamp bounds parsed exponents; anything beyond it already
	// overflows or underflows every representable value, so the exact
	// magnitude no longer matters.
	expClamp = int64(1e15)
)

var manyZeros = bytes.Repeat([]byte{'0'}, 256)

// Kind tags the result of Parse.
type Kind uint8

const (
	KindNumber Kind = iota
	KindNaN
	KindInf
)

// Parsed is a decomposed decimal floating-point literal. For KindNumber
// the value is Digits × 10^Exp with Digits free of leading and trailing
// zeros; a zero value keeps Digits empty.
type Parsed struct {
	Kind   Kind
	Neg    bool
	Digits string
	Exp    int64
}

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

func addPosErrorOffset(err error, offset int) error {
	var pe *posError
	if !errors.As(err, &pe) { // try to locate error position.
		return err
	}
	pe.pos += offset
	return pe
}

// Parse scans a decimal literal with an optional sign, decimal point and
// e/E exponent. The tokens "nan", "inf" and "infinity" are matched case
// insensitively. Surrounding spaces and a pair of double quotes are
// tolerated so that JSON strings can be fed through unchanged.
func Parse(s string) (Parsed, error) {
	s, offset, neg := prepareString(s)
	if len(s) == 0 {
		return Parsed{}, fmt.Errorf("empty input")
	}
	if strings.EqualFold(s, "nan") {
		return Parsed{Kind: KindNaN, Neg: neg}, nil
	}
	if strings.EqualFold(s, "inf") || strings.EqualFold(s, "infinity") {
		return Parsed{Kind: KindInf, Neg: neg}, nil
	}
	digits, e, err := doParse(s)
	if err != nil {
		// add what we've trimmed before and add +1 to the offset to start indices from 1.
		return Parsed{}, fmt.Errorf("parsing failed: %w", addPosErrorOffset(err, offset+1))
	}
	return Parsed{Neg: neg, Digits: digits, Exp: e}, nil
}

// doParse parses given decimal string.
// returns a string without leading and trailing zeros, and an exponent
func doParse(s string) (result string, e int64, err error) {
	result, delimPos, e, err := removeLeadingZeros(s)
	if err != nil {
		return "", 0, err
	}
	result, eFromDelim := removeTrailingZeros(result, delimPos)
	return result, e + eFromDelim, nil
}

// prepareString cleans the string from ",-,+ symbols, and spaces.
func prepareString(s string) (prepared string, offset int, neg bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '"' {
		s = s[1:]
		offset++
	}
	if len(s) == 0 {
		return "", 0, false
	}
	if s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset += len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '-' {
		neg = true
		offset++
		s = s[1:]
	} else if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, neg
}

func removeLeadingZeros(s string) (result string, delimPos int, e int64, err error) {
	var b strings.Builder
	delimPos, firstNonZeroPos := -1, -1
	digitSeen := false
outer:
	for i, r := range s {
		switch {
		case '0' <= r && r <= '9':
			digitSeen = true
			if b.Len() == 0 {
				if r == '0' { // trim leading zeros
					continue
				}
				firstNonZeroPos = i
			}
			b.WriteRune(r)
		case r == 'e' || r == 'E':
			e, err = parseExponent(s[i+1:], i+1)
			if err != nil {
				return "", 0, 0, err
			}
			break outer
		case r == delim:
			if delimPos != -1 {
				return "", 0, 0, newPosError("unexpected delimeter", i)
			}
			delimPos = i
		default:
			return "", 0, 0, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
		}
	}
	if !digitSeen {
		return "", 0, 0, newPosError("no digits", 0)
	}
	if firstNonZeroPos == -1 { // a zero-only string
		return "", 0, e, nil
	}

	result = b.String()

	// move delimPos to the beginning of the trimmed string
	if delimPos >= 0 {
		if delimPos < firstNonZeroPos {
			firstNonZeroPos--
		}
		delimPos -= firstNonZeroPos
	} else { // if there is no delim, add one at the end of the string 123 --> 123.
		delimPos = len(result)
	}

	return result, delimPos, e, nil
}

// parseExponent reads the digits after e/E. Exponents beyond expClamp
// saturate instead of failing: the value over- or underflows either way.
func parseExponent(s string, pos int) (int64, error) {
	parsed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(s, "-") {
				return -expClamp, nil
			}
			return expClamp, nil
		}
		return 0, newPosError("error parsing exponent: "+err.Error(), pos)
	}
	if parsed > expClamp {
		parsed = expClamp
	} else if parsed < -expClamp {
		parsed = -expClamp
	}
	return parsed, nil
}

func removeTrailingZeros(s string, delimPos int) (result string, e int64) {
	for {
		l := len(s)
		if l == 0 || s[l-1] != '0' {
			break
		}
		s = s[:l-1]
	}
	return s, int64(delimPos - len(s))
}

// Zeros returns count ASCII zeros without allocating for small counts.
func Zeros(count int) []byte {
	if count <= len(manyZeros) {
		return manyZeros[:count]
	}
	result := bytes.Repeat(manyZeros, count/len(manyZeros))
	if rem := count % len(manyZeros); rem > 0 {
		result = append(result, manyZeros[:rem]...)
	}
	return result
}
