package publish_test

import (
	"net/url"
	"testing"

	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/aretw0/polezero/pkg/mutate"
	"github.com/aretw0/polezero/pkg/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_Target(t *testing.T) {
	p := publish.New()
	target := p.Publish(domain.Empty())

	u, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "/freq-response", u.Path)
	assert.Equal(t, `{"poles":[],"zeros":[]}`, u.Query().Get("config"))
	assert.Len(t, u.Query(), 1)
}

func TestPublish_CustomPathAndParam(t *testing.T) {
	p := publish.Publisher{Path: "/plot", Param: "pz"}
	u, err := url.Parse(p.Publish(domain.Empty()))
	require.NoError(t, err)
	assert.Equal(t, "/plot", u.Path)
	assert.NotEmpty(t, u.Query().Get("pz"))
}

func TestRead_Absent(t *testing.T) {
	p := publish.New()
	u, _ := url.Parse("/freq-response?other=1")
	assert.Equal(t, "", p.Read(u))
	assert.Equal(t, domain.Empty(), p.Load(u))
	assert.Equal(t, "", p.Read(nil))
}

func TestPublish_PageRoundTrip(t *testing.T) {
	p := publish.New()

	page, err := url.Parse(`/freq-response?config=` + url.QueryEscape(`{"poles":[[0.9,45]],"zeros":[]}`))
	require.NoError(t, err)

	cfg := p.Load(page)
	cfg, err = mutate.AddPoint(cfg, domain.Zero)
	require.NoError(t, err)

	next, err := url.Parse(p.Publish(cfg))
	require.NoError(t, err)

	got := codec.Decode(p.Read(next))
	want := domain.Configuration{
		Poles: []domain.ComplexPoint{domain.Point(0.9, 45)},
		Zeros: []domain.ComplexPoint{domain.Point(0, 0)},
	}
	assert.True(t, want.Equal(got))
}

func TestRead_UnescapedBrowserURL(t *testing.T) {
	// Browsers send the JSON unescaped when it is typed into the address bar.
	u, err := url.Parse(`/freq-response?config={"poles":[[0.5,10]],"zeros":[]}`)
	require.NoError(t, err)

	cfg := publish.New().Load(u)
	assert.Equal(t, []domain.ComplexPoint{domain.Point(0.5, 10)}, cfg.Poles)
}
