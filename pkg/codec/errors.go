package codec

import "errors"

var (
	// ErrMalformed is returned when the input is not a JSON object.
	ErrMalformed = errors.New("malformed configuration")
	// ErrMissingField is returned when "poles" or "zeros" is absent.
	ErrMissingField = errors.New("missing field")
	// ErrNotArray is returned when a sequence or a point is not a JSON array.
	ErrNotArray = errors.New("expected array")
	// ErrArity is returned when a point does not have exactly two components.
	ErrArity = errors.New("expected exactly 2 components")
	// ErrNotNumeric is returned when a component is not a number.
	ErrNotNumeric = errors.New("expected number")
)

// Reason maps a decode error to a short label, used for metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrNotArray):
		return "not_array"
	case errors.Is(err, ErrArity):
		return "arity"
	case errors.Is(err, ErrNotNumeric):
		return "not_numeric"
	case errors.Is(err, ErrInputTooLarge):
		return "too_large"
	case errors.Is(err, ErrInvalidUTF8):
		return "invalid_utf8"
	default:
		return "malformed"
	}
}
