// Package ratio solves a:b = c:d for the missing side.
package ratio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"canvas-cropper/internal/mathutil"
)

var (
	// ErrDivideByZero is returned when a or b is zero.
	ErrDivideByZero = errors.New("ratio: denominator cannot be 0")
	// ErrNotANumber is returned when an input does not parse as a number.
	ErrNotANumber = errors.New("ratio: not a number")
)

// Field names one of the four values of a:b = c:d.
type Field int

const (
	FieldA Field = iota
	FieldB
	FieldC
	FieldD
)

func (f Field) String() string {
	switch f {
	case FieldA:
		return "a"
	case FieldB:
		return "b"
	case FieldC:
		return "c"
	case FieldD:
		return "d"
	default:
		return "unknown"
	}
}

// SolveD returns round(b*c/a).
func SolveD(a, b, c float64) (float64, error) {
	if err := check(a, b, c); err != nil {
		return 0, err
	}
	return mathutil.RoundHalfUp(b * c / a), nil
}

// SolveC returns round(a*d/b).
func SolveC(a, b, d float64) (float64, error) {
	if err := check(a, b, d); err != nil {
		return 0, err
	}
	return mathutil.RoundHalfUp(a * d / b), nil
}

// Solve recomputes the partner of the edited field. Editing c yields d and
// editing d yields c; edits to a or b solve nothing and return
// (edited, NaN, nil) so callers keep their current values.
func Solve(a, b, c, d float64, edited Field) (Field, float64, error) {
	switch edited {
	case FieldC:
		v, err := SolveD(a, b, c)
		return FieldD, v, err
	case FieldD:
		v, err := SolveC(a, b, d)
		return FieldC, v, err
	default:
		return edited, math.NaN(), nil
	}
}

func check(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNotANumber
		}
	}
	if vals[0] == 0 || vals[1] == 0 {
		return ErrDivideByZero
	}
	return nil
}

// ParseValue reads a user-typed number. Leading numeric prefixes are
// accepted the way an HTML number input's parseFloat would ("800px" is 800).
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || ((ch == '-' || ch == '+') && end == 0) || ch == 'e' || ch == 'E' {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, nil
		}
		end--
	}
	return math.NaN(), fmt.Errorf("%w: %q", ErrNotANumber, s)
}
