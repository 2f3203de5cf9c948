package codec

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds the encoded configuration accepted by DecodeStrict.
	DefaultMaxInputSize = 64 << 10
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "POLEZERO_MAX_INPUT_SIZE"
)

var (
	// ErrInputTooLarge is returned for values over the size limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	// ErrInvalidUTF8 is returned for values that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// checkInput rejects values that are too large or not UTF-8. Values are
// rejected rather than truncated so that a decode is deterministic.
func checkInput(raw string) error {
	if limit := MaxInputSize(); len(raw) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(raw), limit)
	}
	if !utf8.ValidString(raw) {
		return ErrInvalidUTF8
	}
	return nil
}

// MaxInputSize returns the size limit, honouring EnvMaxInputSize.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
