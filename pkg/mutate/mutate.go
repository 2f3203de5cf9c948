// Package mutate implements the pure edit operations applied to a draft
// configuration. Every function leaves its input untouched and returns a new
// Configuration.
package mutate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/polezero/pkg/domain"
)

// AddPoint appends the origin (0, 0) to the sequence selected by kind.
func AddPoint(c domain.Configuration, kind domain.Kind) (domain.Configuration, error) {
	out := c.Clone()
	points, err := out.Points(kind)
	if err != nil {
		return c, err
	}
	return out.WithPoints(kind, append(points, domain.Point(0, 0)))
}

// SetCoordinate replaces one component of the point at index.
// Non-finite values are stored as given; validity is checked when publishing.
func SetCoordinate(c domain.Configuration, kind domain.Kind, index int, axis domain.Axis, value float64) (domain.Configuration, error) {
	out := c.Clone()
	points, err := out.Points(kind)
	if err != nil {
		return c, err
	}
	if err := checkIndex(kind, index, len(points)); err != nil {
		return c, err
	}
	p, err := points[index].With(axis, value)
	if err != nil {
		return c, err
	}
	points[index] = p
	return out, nil
}

// RemovePoint deletes the point at index, preserving the order of the rest.
func RemovePoint(c domain.Configuration, kind domain.Kind, index int) (domain.Configuration, error) {
	out := c.Clone()
	points, err := out.Points(kind)
	if err != nil {
		return c, err
	}
	if err := checkIndex(kind, index, len(points)); err != nil {
		return c, err
	}
	return out.WithPoints(kind, append(points[:index], points[index+1:]...))
}

func checkIndex(kind domain.Kind, index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("%w: %s %d (have %d)", domain.ErrIndexOutOfRange, kind, index, length)
	}
	return nil
}

// MaxValueLength bounds the text accepted by ParseValue. Longer input is NaN.
const MaxValueLength = 1024

// ParseValue converts interim text input to a number the way a browser number
// field does: the longest numeric prefix is used and anything else is NaN.
// Literals beyond the float64 range become ±Inf.
func ParseValue(s string) float64 {
	s = strings.TrimSpace(s)
	if len(s) > MaxValueLength {
		return math.NaN()
	}
	end := numericPrefix(s)
	if end == 0 {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// numericPrefix returns the length of the decimal literal at the start of s:
// an optional sign, digits with at most one point, and an exponent only when
// it has digits. Spellings strconv accepts but a decimal literal does not,
// such as "Inf", hex floats and underscores, are never part of it.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	return end
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
