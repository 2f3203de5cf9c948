package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Configuration is the pair of pole and zero sequences edited by the user.
// Order only determines row order and the index used by edits.
type Configuration struct {
	Poles []ComplexPoint `json:"poles"`
	Zeros []ComplexPoint `json:"zeros"`
}

// Empty returns the fallback configuration with both sequences empty (never nil).
func Empty() Configuration {
	return Configuration{
		Poles: []ComplexPoint{},
		Zeros: []ComplexPoint{},
	}
}

// Points returns the sequence selected by kind. The slice is shared with c.
func (c Configuration) Points(kind Kind) ([]ComplexPoint, error) {
	switch kind {
	case Pole:
		return c.Poles, nil
	case Zero:
		return c.Zeros, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// WithPoints returns a copy of c whose sequence selected by kind is replaced by points.
func (c Configuration) WithPoints(kind Kind, points []ComplexPoint) (Configuration, error) {
	switch kind {
	case Pole:
		c.Poles = points
	case Zero:
		c.Zeros = points
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return c, nil
}

// Clone returns a deep copy. Nil sequences become empty ones.
func (c Configuration) Clone() Configuration {
	out := Empty()
	out.Poles = append(out.Poles, c.Poles...)
	out.Zeros = append(out.Zeros, c.Zeros...)
	return out
}

// Len returns the total number of points.
func (c Configuration) Len() int {
	return len(c.Poles) + len(c.Zeros)
}

// IsEmpty reports whether both sequences are empty.
func (c Configuration) IsEmpty() bool {
	return c.Len() == 0
}

// Equal compares both sequences element-wise. NaN components compare equal to
// each other so that drafts holding interim input can be compared.
func (c Configuration) Equal(other Configuration) bool {
	return pointsEqual(c.Poles, other.Poles) && pointsEqual(c.Zeros, other.Zeros)
}

// OutOfRange lists the indices of points outside the conventional editing ranges.
func (c Configuration) OutOfRange(kind Kind) []int {
	points, err := c.Points(kind)
	if err != nil {
		return nil
	}
	var idx []int
	for i, p := range points {
		if !p.InRange() {
			idx = append(idx, i)
		}
	}
	return idx
}

// MarshalJSON always writes both keys as arrays.
func (c Configuration) MarshalJSON() ([]byte, error) {
	type alias Configuration
	return json.Marshal(alias(c.Clone()))
}

func pointsEqual(a, b []ComplexPoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !floatEqual(a[i].Magnitude, b[i].Magnitude) || !floatEqual(a[i].Phase, b[i].Phase) {
			return false
		}
	}
	return true
}

func floatEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
