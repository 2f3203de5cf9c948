package query_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/aretw0/polezero/pkg/adapters/query"
	"github.com/aretw0/polezero/pkg/ports"
	"github.com/aretw0/polezero/pkg/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySource_Contract(t *testing.T) {
	src, err := query.Parse("/freq-response", publish.New())
	require.NoError(t, err)
	ports.RunConfigSourceContract(t, src)
}

func TestQuerySource_LoadAbsent(t *testing.T) {
	src, err := query.Parse("https://example.com/freq-response?x=1", publish.New())
	require.NoError(t, err)

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

func TestQuerySource_SaveReplacesQuery(t *testing.T) {
	src, err := query.Parse("https://example.com/freq-response?x=1&config=old", publish.New())
	require.NoError(t, err)

	require.NoError(t, src.Save(context.Background(), `{"poles":[],"zeros":[[0,0]]}`))

	u, err := url.Parse(src.Location())
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "example.com", u.Host)
	assert.Equal(t, "/freq-response", u.Path)
	assert.Equal(t, url.Values{"config": {`{"poles":[],"zeros":[[0,0]]}`}}, u.Query())
}

func TestQuerySource_KeepsPathWhenPublisherHasNone(t *testing.T) {
	src, err := query.Parse("/plots/bode", publish.Publisher{Param: "pz"})
	require.NoError(t, err)

	require.NoError(t, src.Save(context.Background(), "{}"))
	assert.Equal(t, "/plots/bode?pz=%7B%7D", src.Location())
}
