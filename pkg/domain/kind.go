package domain

import (
	"fmt"
	"strings"
)

// Kind selects which sequence of a Configuration an operation targets.
type Kind string

const (
	Pole Kind = "pole"
	Zero Kind = "zero"
)

// ParseKind accepts "pole", "zero" and their plural forms, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pole", "poles":
		return Pole, nil
	case "zero", "zeros":
		return Zero, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is Pole or Zero.
func (k Kind) Valid() bool {
	return k == Pole || k == Zero
}

// Axis selects a component of a ComplexPoint.
type Axis string

const (
	Magnitude Axis = "magnitude"
	Phase     Axis = "phase"
)

// ParseAxis accepts "magnitude", "mag" and "phase", case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "magnitude", "mag":
		return Magnitude, nil
	case "phase":
		return Phase, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}
