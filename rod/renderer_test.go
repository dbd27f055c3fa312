//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements scrapeall.Renderer.
var _ scrapeall.Renderer = (*rod.Renderer)(nil)

// dosingPageHTML exposes one toggle per location strategy: exact button
// text, a class token, an ARIA tab, and a radio input.
const dosingPageHTML = `<!DOCTYPE html>
<html>
<head><title>Dosing</title></head>
<body>
<button id="oral-btn">Oral</button>
<button class="injectable-switch">Needle</button>
<div role="tab" id="nasal-tab">Nasal Spray Option</div>
<input type="radio" name="route" value="topical">
<div id="content">Injectable dosing guidance with syringe preparation.</div>
<script>
document.getElementById('oral-btn').addEventListener('click', function () {
  document.getElementById('content').textContent = 'Oral dosing guidance with capsule schedule.';
});
</script>
</body>
</html>`

func newDosingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(dosingPageHTML))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRenderer_Render_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	html, err := renderer.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")
	assert.NotContains(t, html, "Loading...")
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = renderer.Render(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithRenderTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	_, err = renderer.Render(context.Background(), srv.URL)

	require.Error(t, err)
}

func TestRenderer_Close_Idempotent(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)

	require.NoError(t, renderer.Close())
	require.NoError(t, renderer.Close())
}

func TestRenderer_Render_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	require.NoError(t, renderer.Close())

	_, err = renderer.Render(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, scrapeall.EINVALID, scrapeall.ErrorCode(err))
	assert.Contains(t, scrapeall.ErrorMessage(err), "closed")
}

func TestRenderer_LocateToggle_Strategies(t *testing.T) {
	t.Parallel()

	srv := newDosingServer(t)

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	_, err = renderer.Render(context.Background(), srv.URL)
	require.NoError(t, err)

	tests := []struct {
		route    scrapeall.Route
		strategy string
	}{
		{scrapeall.RouteOral, "exact text"},
		{scrapeall.RouteInjectable, "class or attribute"},
		{scrapeall.RouteNasal, "tab role"},
		{scrapeall.RouteTopical, "form control"},
	}
	for _, tt := range tests {
		handle, err := renderer.LocateToggle(context.Background(), tt.route)
		require.NoError(t, err, "route %s", tt.route)
		assert.Contains(t, handle.Describe(), tt.strategy)
	}
}

func TestRenderer_LocateToggle_MissReturnsNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>No toggles here at all.</p></body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	_, err = renderer.Render(context.Background(), srv.URL)
	require.NoError(t, err)

	_, err = renderer.LocateToggle(context.Background(), scrapeall.RouteOral)

	require.Error(t, err)
	assert.Equal(t, scrapeall.ENOTFOUND, scrapeall.ErrorCode(err))
}

func TestRenderer_LocateToggle_BeforeRender_ReturnsError(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	_, err = renderer.LocateToggle(context.Background(), scrapeall.RouteOral)

	require.Error(t, err)
	assert.Equal(t, scrapeall.EINVALID, scrapeall.ErrorCode(err))
}

func TestRenderer_Activate_SwitchesContent(t *testing.T) {
	t.Parallel()

	srv := newDosingServer(t)

	renderer, err := rod.NewRenderer(rod.WithSettleDelay(50 * time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	html, err := renderer.Render(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Injectable dosing guidance")

	handle, err := renderer.LocateToggle(context.Background(), scrapeall.RouteOral)
	require.NoError(t, err)

	toggled, err := renderer.Activate(context.Background(), handle)

	require.NoError(t, err)
	assert.Contains(t, toggled, "Oral dosing guidance with capsule schedule.")
	assert.NotContains(t, toggled, "Injectable dosing guidance")
}
