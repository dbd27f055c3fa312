package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/manas95826/scrape-all"
	scrapehttp "github.com/manas95826/scrape-all/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_Resolve_FlatSitemap(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/products/alpha</loc></url>
  <url><loc>{{BASE}}/products/beta</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/products/alpha",
		srv.URL + "/products/beta",
		srv.URL + "/about",
	}, urls)
}

func TestSitemapService_Resolve_NestedIndex(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-products.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-pages.xml</loc></sitemap>
</sitemapindex>`

	sitemapProducts := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/products/alpha</loc></url>
</urlset>`

	sitemapPages := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/about</loc></url>
  <url><loc>{{BASE}}/products/alpha</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":          sitemapIndex,
		"/sitemap-products.xml": sitemapProducts,
		"/sitemap-pages.xml":    sitemapPages,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	// Duplicates across nested sitemaps collapse to first occurrence.
	assert.Equal(t, []string{
		srv.URL + "/products/alpha",
		srv.URL + "/about",
	}, urls)
}

func TestSitemapService_Resolve_CyclicIndexTerminates(t *testing.T) {
	t.Parallel()

	sitemapA := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page-a</loc></url>
  <sitemap><loc>{{BASE}}/sitemap-b.xml</loc></sitemap>
</urlset>`

	sitemapB := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page-b</loc></url>
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap-a.xml": sitemapA,
		"/sitemap-b.xml": sitemapB,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap-a.xml")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/page-a", srv.URL + "/page-b"}, urls)
}

func TestSitemapService_Resolve_FetchLimit(t *testing.T) {
	t.Parallel()

	chain := func(self, next string) string {
		return `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page-` + self + `</loc></url>
  <sitemap><loc>{{BASE}}/sitemap-` + next + `.xml</loc></sitemap>
</urlset>`
	}

	srv := newTestServer(t, map[string]string{
		"/sitemap-1.xml": chain("1", "2"),
		"/sitemap-2.xml": chain("2", "3"),
		"/sitemap-3.xml": chain("3", "4"),
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil, scrapehttp.WithFetchLimit(2))
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap-1.xml")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/page-1", srv.URL + "/page-2"}, urls)
}

func TestSitemapService_Resolve_SkipsEntriesWithoutLoc(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/kept</loc></url>
  <url></url>
  <url><loc>   </loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/kept"}, urls)
}

func TestSitemapService_Resolve_UnparseableXML(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": "this is not xml <<<",
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapService_Resolve_FetchFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Resolve(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapService_Resolve_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	svc := scrapehttp.NewSitemapService(nil)
	_, err := svc.Resolve(ctx, srv.URL+"/sitemap.xml")

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSitemapService_Discover_FirstWellKnownPath(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/page1"}, urls)
}

func TestSitemapService_Discover_LaterWellKnownPath(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/wp-page</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/wp-sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/wp-page"}, urls)
}

func TestSitemapService_Discover_SkipsEmptySitemap(t *testing.T) {
	t.Parallel()

	emptySitemap := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
</urlset>`

	populatedSitemap := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/real-page</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":       emptySitemap,
		"/sitemap_index.xml": populatedSitemap,
	})
	defer srv.Close()

	svc := scrapehttp.NewSitemapService(nil)
	urls, err := svc.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/real-page"}, urls)
}

func TestSitemapService_Discover_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	var messages []string
	svc := scrapehttp.NewSitemapService(nil, scrapehttp.WithProgress(func(fraction float64, message string) {
		messages = append(messages, message)
	}))

	_, err := svc.Discover(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, scrapeall.ENOTFOUND, scrapeall.ErrorCode(err))

	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "Trying sitemap: "+srv.URL+"/sitemap.xml")
	assert.Contains(t, joined, "No sitemap found, falling back to crawling")
}

func TestSitemapService_Discover_InvalidSiteURL(t *testing.T) {
	t.Parallel()

	svc := scrapehttp.NewSitemapService(nil)
	_, err := svc.Discover(context.Background(), "not-a-url")

	require.Error(t, err)
	assert.Equal(t, scrapeall.EINVALID, scrapeall.ErrorCode(err))
}

// newTestServer creates a test HTTP server with the given path->content mapping.
// Content strings may contain {{BASE}} which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		// Replace {{BASE}} with actual server URL
		body = replaceBaseURL(body, srv.URL)

		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))

	return srv
}

func replaceBaseURL(content, baseURL string) string {
	return regexp.MustCompile(`\{\{BASE\}\}`).ReplaceAllString(content, baseURL)
}
