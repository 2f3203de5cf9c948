package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/polezero/pkg/domain"
)

const (
	keyPoles = "poles"
	keyZeros = "zeros"
)

// Decode parses raw into a Configuration. It never fails: any invalid input
// yields domain.Empty().
func Decode(raw string) domain.Configuration {
	cfg, err := DecodeStrict(raw)
	if err != nil {
		return domain.Empty()
	}
	return cfg
}

// DecodeStrict parses and validates raw. Extra keys are ignored.
func DecodeStrict(raw string) (domain.Configuration, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Empty(), fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err := checkInput(raw); err != nil {
		return domain.Empty(), err
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return domain.Empty(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.Empty(), fmt.Errorf("%w: trailing data after object", ErrMalformed)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return domain.Empty(), fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	poles, err := decodeSequence(obj, keyPoles)
	if err != nil {
		return domain.Empty(), err
	}
	zeros, err := decodeSequence(obj, keyZeros)
	if err != nil {
		return domain.Empty(), err
	}

	return domain.Configuration{Poles: poles, Zeros: zeros}, nil
}

func decodeSequence(obj map[string]any, key string) ([]domain.ComplexPoint, error) {
	value, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotArray, key)
	}

	points := make([]domain.ComplexPoint, 0, len(items))
	for i, item := range items {
		pair, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d]", ErrNotArray, key, i)
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s[%d] has %d", ErrArity, key, i, len(pair))
		}
		var coords [2]float64
		for j, c := range pair {
			f, ok := c.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d][%d]", ErrNotNumeric, key, i, j)
			}
			coords[j] = f
		}
		points = append(points, domain.Point(coords[0], coords[1]))
	}
	return points, nil
}

// Encode writes c in the shape accepted by Decode. Non-finite components are
// written as null, which Decode rejects.
func Encode(c domain.Configuration) string {
	var buf bytes.Buffer
	// Configuration and ComplexPoint marshalers never return an error.
	_ = json.NewEncoder(&buf).Encode(c)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Validate reports whether Decode(Encode(c)) would return c: the first
// non-finite component, or ErrInputTooLarge when the encoded form exceeds
// MaxInputSize.
func Validate(c domain.Configuration) error {
	for _, kind := range []domain.Kind{domain.Pole, domain.Zero} {
		points, _ := c.Points(kind)
		for i, p := range points {
			if !p.Finite() {
				return fmt.Errorf("%w: %s %d is %s", domain.ErrNonFinite, kind, i, p)
			}
		}
	}
	return CheckSize(c)
}

// CheckSize returns ErrInputTooLarge when the encoded form of c would be
// rejected by DecodeStrict.
func CheckSize(c domain.Configuration) error {
	if size, limit := len(Encode(c)), MaxInputSize(); size > limit {
		return fmt.Errorf("%w: encoded size=%d limit=%d", ErrInputTooLarge, size, limit)
	}
	return nil
}
