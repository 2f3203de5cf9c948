package codec_test

import (
	"math"
	"testing"

	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FallsBackToEmpty(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"not json":         "not json",
		"empty object":     "{}",
		"short point":      `{"poles":[[1]],"zeros":[]}`,
		"long point":       `{"poles":[[1,2,3]],"zeros":[]}`,
		"missing zeros":    `{"poles":[]}`,
		"null poles":       `{"poles":null,"zeros":[]}`,
		"string component": `{"poles":[["0.5",1]],"zeros":[]}`,
		"null component":   `{"poles":[],"zeros":[[null,1]]}`,
		"point not array":  `{"poles":[{"m":1,"p":2}],"zeros":[]}`,
		"top level array":  `[[0.5,1]]`,
		"overflow":         `{"poles":[[1e400,0]],"zeros":[]}`,
		"trailing data":    `{"poles":[],"zeros":[]} {}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := codec.Decode(raw)
			assert.Equal(t, domain.Empty(), cfg)

			_, err := codec.DecodeStrict(raw)
			assert.Error(t, err)
		})
	}
}

func TestDecode_AllOrNothing(t *testing.T) {
	// zeros is valid, poles is not: nothing survives.
	cfg := codec.Decode(`{"poles":[[0.5]],"zeros":[[0.2,30]]}`)
	assert.True(t, cfg.IsEmpty())
}

func TestDecode_IgnoresExtraKeys(t *testing.T) {
	cfg, err := codec.DecodeStrict(`{"poles":[[0.9,45]],"zeros":[],"gain":2}`)
	require.NoError(t, err)
	assert.Equal(t, []domain.ComplexPoint{domain.Point(0.9, 45)}, cfg.Poles)
	assert.Empty(t, cfg.Zeros)
}

func TestDecodeStrict_Reasons(t *testing.T) {
	cases := []struct {
		raw    string
		target error
		reason string
	}{
		{"{", codec.ErrMalformed, "malformed"},
		{`{"zeros":[]}`, codec.ErrMissingField, "missing_field"},
		{`{"poles":{},"zeros":[]}`, codec.ErrNotArray, "not_array"},
		{`{"poles":[[1]],"zeros":[]}`, codec.ErrArity, "arity"},
		{`{"poles":[[1,true]],"zeros":[]}`, codec.ErrNotNumeric, "not_numeric"},
	}
	for _, tc := range cases {
		_, err := codec.DecodeStrict(tc.raw)
		assert.ErrorIs(t, err, tc.target, tc.raw)
		assert.Equal(t, tc.reason, codec.Reason(err), tc.raw)
	}
	assert.Equal(t, "none", codec.Reason(nil))
}

func TestEncode_Shape(t *testing.T) {
	assert.Equal(t, `{"poles":[],"zeros":[]}`, codec.Encode(domain.Configuration{}))

	cfg := domain.Configuration{
		Poles: []domain.ComplexPoint{domain.Point(0.9, 45)},
		Zeros: []domain.ComplexPoint{domain.Point(0, 0), domain.Point(0.25, -180)},
	}
	assert.Equal(t, `{"poles":[[0.9,45]],"zeros":[[0,0],[0.25,-180]]}`, codec.Encode(cfg))
}

func TestRoundTrip(t *testing.T) {
	configs := []domain.Configuration{
		domain.Empty(),
		{
			Poles: []domain.ComplexPoint{domain.Point(0.9, 45), domain.Point(0.9, -45)},
			Zeros: []domain.ComplexPoint{domain.Point(1, 0)},
		},
		{
			Poles: []domain.ComplexPoint{domain.Point(1e-9, 359.5), domain.Point(3.5, -720)},
			Zeros: []domain.ComplexPoint{},
		},
	}
	for _, cfg := range configs {
		back, err := codec.DecodeStrict(codec.Encode(cfg))
		require.NoError(t, err)
		assert.True(t, cfg.Equal(back), "round trip of %s", codec.Encode(cfg))
	}
}

func TestEncode_NonFiniteDecodesToEmpty(t *testing.T) {
	cfg := domain.Configuration{Poles: []domain.ComplexPoint{domain.Point(math.NaN(), 0)}}
	raw := codec.Encode(cfg)

	assert.Equal(t, `{"poles":[[null,0]],"zeros":[]}`, raw)
	assert.True(t, codec.Decode(raw).IsEmpty())
	assert.ErrorIs(t, codec.Validate(cfg), domain.ErrNonFinite)
	assert.NoError(t, codec.Validate(domain.Empty()))
}
