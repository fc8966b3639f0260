package homepage_test

import (
	"context"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-nowak/homepage"
	"github.com/josh-nowak/homepage/consts"
	"github.com/josh-nowak/homepage/views"
)

const testSiteURL = "https://joshuanowak.eu"

func newTestApp(t *testing.T, notes int, metrics bool) *homepage.App {
	t.Helper()
	dir := t.TempDir()
	content := filepath.Join(dir, "notes")
	require.NoError(t, os.Mkdir(content, 0o755))

	for i := 1; i <= notes; i++ {
		tag := "research"
		if i%2 == 0 {
			tag = "product"
		}
		src := fmt.Sprintf("---\ntitle: Note %d\ndescription: Summary %d\ndate: 2024-%02d-01\ntags: [%s]\n---\nBody of **note %d**.\n", i, i, i, tag, i)
		require.NoError(t, os.WriteFile(filepath.Join(content, fmt.Sprintf("note-%d.md", i)), []byte(src), 0o644))
	}

	app := homepage.New(homepage.Config{
		URL:            testSiteURL,
		DatabasePath:   filepath.Join(dir, "data", "notes.db"),
		ContentDir:     content,
		StaticDir:      filepath.Join(dir, "public"),
		MetricsEnabled: metrics,
	}, views.Default())
	require.NoError(t, app.Init(context.Background()))
	t.Cleanup(func() { app.Close() })
	return app
}

func get(app *homepage.App, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHomeShowsRecentNotesAndSocials(t *testing.T) {
	app := newTestApp(t, 7, false)

	rec := get(app, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Equal(t, consts.Site.NumPostsOnHomepage, strings.Count(body, "<time"))
	assert.Contains(t, body, "Note 7")
	assert.Contains(t, body, "Note 3")
	assert.NotContains(t, body, "Note 2<")

	assert.Contains(t, body, "<title>Joshua Nowak</title>")
	assert.Contains(t, body, `content="Joshua Nowak - Bridging psychology and product"`)
	assert.Contains(t, body, `href="mailto:hello@joshuanowak.eu"`)
	for _, s := range consts.Socials {
		assert.Contains(t, body, `href="`+s.Href+`"`)
	}
	assert.Contains(t, body, `"@type":"Person"`)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestHomeWithoutNotes(t *testing.T) {
	app := newTestApp(t, 0, false)

	rec := get(app, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No notes yet.")
}

func TestBlogIndex(t *testing.T) {
	app := newTestApp(t, 7, false)

	rec := get(app, "/blog/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 7, strings.Count(body, "<time"))
	assert.Contains(t, body, "<title>Notes &amp; Highlights | Joshua Nowak</title>")
	assert.Contains(t, body, "A collection of notes and highlights from my work.")

	rec = get(app, "/blog/?tag=Product")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<time"))
	assert.Contains(t, rec.Body.String(), `class="tag active" href="/blog/?tag=product"`)
}

func TestTrailingSlashRedirect(t *testing.T) {
	app := newTestApp(t, 1, false)

	rec := get(app, "/blog")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/blog/", rec.Header().Get("Location"))

	rec = get(app, "/blog/note-1")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/blog/note-1/", rec.Header().Get("Location"))
}

func TestPostPage(t *testing.T) {
	app := newTestApp(t, 3, false)

	rec := get(app, "/blog/note-1/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Note 1 | Joshua Nowak</title>")
	assert.Contains(t, body, "<strong>note 1</strong>")
	assert.Contains(t, body, `"@type":"BlogPosting"`)
	assert.Contains(t, body, "Related notes")
	assert.Contains(t, body, `href="/blog/note-3/"`)
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t, 1, false)

	for _, path := range []string{"/blog/missing/", "/nope/"} {
		rec := get(app, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Page not found", path)
	}
}

func TestFeed(t *testing.T) {
	app := newTestApp(t, 2, false)

	rec := get(app, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Notes &amp; Highlights | Joshua Nowak</title>")
	assert.Contains(t, body, "<managingEditor>hello@joshuanowak.eu (Joshua Nowak)</managingEditor>")
	assert.Contains(t, body, "<guid>https://joshuanowak.eu/blog/note-2/</guid>")
	assert.Contains(t, body, "<category>product</category>")
	assert.Equal(t, 2, strings.Count(body, "<item>"))
}

func TestSitemap(t *testing.T) {
	app := newTestApp(t, 2, false)

	rec := get(app, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, loc := range []string{
		"https://joshuanowak.eu/",
		"https://joshuanowak.eu/blog/",
		"https://joshuanowak.eu/blog/note-1/",
		"https://joshuanowak.eu/blog/note-2/",
	} {
		assert.Contains(t, body, "<loc>"+loc+"</loc>")
	}
}

func TestRobotsAndHealth(t *testing.T) {
	app := newTestApp(t, 0, false)

	rec := get(app, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://joshuanowak.eu/sitemap.xml")

	rec = get(app, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestOGImage(t *testing.T) {
	app := newTestApp(t, 0, false)

	for _, page := range []string{"home", "blog"} {
		rec := get(app, "/og/"+page+".png")
		require.Equal(t, http.StatusOK, rec.Code, page)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

		img, err := png.Decode(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, 1200, img.Bounds().Dx())
		assert.Equal(t, 630, img.Bounds().Dy())
	}

	assert.Equal(t, http.StatusNotFound, get(app, "/og/about.png").Code)
	assert.Equal(t, http.StatusNotFound, get(app, "/og/home").Code)
}

func TestMetrics(t *testing.T) {
	app := newTestApp(t, 2, true)

	require.Equal(t, http.StatusOK, get(app, "/").Code)

	rec := get(app, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "homepage_notes_synced 2")
	assert.Contains(t, body, "requests_total")
}

func TestInitFailsOnBrokenNote(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("no front matter"), 0o644))

	app := homepage.New(homepage.Config{
		DatabasePath: filepath.Join(t.TempDir(), "notes.db"),
		ContentDir:   dir,
	}, views.Default())
	t.Cleanup(func() { app.Close() })

	err := app.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestStartStopsWatcherBeforeReturning(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "notes")
	require.NoError(t, os.Mkdir(content, 0o755))

	app := homepage.New(homepage.Config{
		Addr:         "127.0.0.1:0",
		DatabasePath: filepath.Join(dir, "notes.db"),
		ContentDir:   content,
		WatchContent: true,
	}, views.Default())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Start(ctx) }()

	require.Eventually(t, func() bool { return app.Echo.ListenerAddr() != nil }, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(content, "late.md"), []byte("---\ntitle: Late\ndate: 2024-01-01\n---\nlate"), 0o644))
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	assert.NoError(t, app.Close())
}
