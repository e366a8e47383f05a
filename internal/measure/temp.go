package measure

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Temp represents a temperature, stored as an integer 10x the temperature.
// Keeping whole tenths avoids float parsing and makes sums exact.
type Temp int32

// TempSum represents a sum of temperatures, stored as an integer 10x the
// temperature.
type TempSum int64

// Float64 returns the temperature in degrees.
func (t Temp) Float64() float64 {
	return float64(t) / 10.0
}

func (t Temp) String() string {
	return string(t.Append(nil))
}

// Append appends the temperature with exactly one fractional digit.
func (t Temp) Append(dst []byte) []byte {
	v := int64(t)
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	dst = strconv.AppendInt(dst, v/10, 10)
	dst = append(dst, '.')
	return append(dst, byte('0'+v%10))
}

// Float64 returns the sum in degrees.
func (s TempSum) Float64() float64 {
	return float64(s) / 10.0
}

var bSemi = []byte(";")

// ParseRecord splits a line into station name and temperature. The name is
// everything before the last semicolon.
func ParseRecord(line []byte) (name []byte, t Temp, err error) {
	index := bytes.LastIndex(line, bSemi)
	if index == -1 {
		return nil, 0, fmt.Errorf("%w: expected a semicolon: %q", ErrMalformedRecord, line)
	}
	t, err = ParseTemp(line[index+1:])
	if err != nil {
		return nil, 0, err
	}
	return line[:index], t, nil
}

// ParseTemp decodes "[-]digits.digit" as sign * (whole*10 + fraction).
// "-0.0" decodes to 0.
func ParseTemp(b []byte) (Temp, error) {
	s := b
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	dot := len(s) - 2
	if dot < 1 || s[dot] != '.' {
		return 0, fmt.Errorf("%w: invalid temp %q: want digits, a dot and one fractional digit", ErrMalformedRecord, b)
	}
	var v int64
	for _, c := range s[:dot] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: invalid temp %q: non-digit %q", ErrMalformedRecord, b, c)
		}
		v = v*10 + int64(c-'0')
		if v > math.MaxInt32/10 {
			return 0, fmt.Errorf("%w: invalid temp %q: out of range", ErrMalformedRecord, b)
		}
	}
	frac := s[dot+1]
	if frac < '0' || frac > '9' {
		return 0, fmt.Errorf("%w: invalid temp %q: non-digit %q", ErrMalformedRecord, b, frac)
	}
	v = v*10 + int64(frac-'0')
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: invalid temp %q: out of range", ErrMalformedRecord, b)
	}
	if neg {
		v = -v
	}
	return Temp(v), nil
}
