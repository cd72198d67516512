package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/zimsite/internal/config"
	ferrors "git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/metrics"
)

func kiwixMainPage(canonical string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Main Page</title>
<link rel="canonical" href="%s"></head>
<body>
<div id="mw-mf-viewport"><div id="mw-mf-page-center">
<div id="content"><div id="mw-content-text">
<p>Snapshot text</p>
<div class="offline-note">This is an offline copy.</div>
</div></div>
</div></div>
<a href="https://en.example.org/w/index.php?title=Main_Page&amp;oldid=123456&amp;action=info">Permanent link</a>
</body></html>`, canonical)
}

const livePage = `<!DOCTYPE html>
<html><body>
<div id="content" class="mw-body">
<a class="mw-jump-link" href="#bodyContent">Jump to navigation</a>
<div id="siteNotice">Donate</div>
<h1 id="firstHeading">Main Page</h1>
<div id="siteSub">From the encyclopedia</div>
<div id="contentSub"></div>
<div id="mw-content-text">
<p>Live text <a id="dog" href="/wiki/Dog">Dog</a>
<a id="file" href="/wiki/File:Dog.png">Dog picture</a>
<a id="ext" href="https://other.example.org/x">Elsewhere</a></p>
</div>
<div id="catlinks">Categories</div>
</div>
</body></html>`

func newMerger(t *testing.T, dirs layout.Directories, fetcher Fetcher) *MainPageMerger {
	t.Helper()
	return NewMainPageMerger(testOptions(dirs), dirs, fetcher, testFooter(t, config.SiteConfig{Title: "Offline Wiki"}), testSnapshot)
}

func TestMainPageMerger_Merge(t *testing.T) {
	var gotPath, gotOldID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOldID = r.URL.Query().Get("oldid")
		_, _ = w.Write([]byte(livePage))
	}))
	defer srv.Close()

	dirs := newTestTree(t)
	canonical := srv.URL + "/wiki/Main_Page"
	writeTestFile(t, filepath.Join(dirs.OutputRoot, "Main_Page.html"), kiwixMainPage(canonical))

	rec := metrics.NewPrometheusRecorder(nil)
	m := newMerger(t, dirs, NewHTTPFetcher(config.FetchConfig{}, srv.Client())).WithRecorder(rec)
	res, err := m.Merge(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/wiki/Index", gotPath)
	assert.Equal(t, "123456", gotOldID)
	assert.Equal(t, filepath.Join(dirs.OutputRoot, "Index.html"), res.Path)
	assert.Equal(t, "123456", res.RevisionID)
	assert.Equal(t, canonical, res.CanonicalURL)

	doc := readTestDoc(t, res.Path)

	content := doc.Find("#mw-mf-page-center > #content")
	require.Equal(t, 1, content.Length())
	assert.True(t, content.HasClass("content"))
	assert.True(t, content.HasClass("mw-body"))
	assert.Equal(t, 1, doc.Find("#content").Length(), "snapshot content is replaced")
	assert.NotContains(t, doc.Text(), "Snapshot text")

	for _, sel := range []string{"#siteNotice", "#firstHeading", "#siteSub", "#contentSub", "#catlinks", "a.mw-jump-link"} {
		assert.Equal(t, 0, doc.Find(sel).Length(), sel)
	}

	text := doc.Find("#mw-content-text")
	require.Equal(t, 1, text.Length())
	assert.True(t, text.Children().Last().HasClass("offline-note"), "offline note is the last child")

	assert.Equal(t, "Dog.html", doc.Find("#dog").AttrOr("href", ""))
	assert.Equal(t, "/wiki/File:Dog.png", doc.Find("#file").AttrOr("href", ""))
	assert.Equal(t, "https://other.example.org/x", doc.Find("#ext").AttrOr("href", ""))

	footer := doc.Find("body > footer#zimsite-footer")
	require.Equal(t, 1, footer.Length())
	assert.Equal(t, canonical, footer.Find(`a[href="`+canonical+`"]`).AttrOr("href", ""))

	// The snapshot's own main page is left as it was.
	src, err := os.ReadFile(filepath.Join(dirs.OutputRoot, "Main_Page.html"))
	require.NoError(t, err)
	assert.Equal(t, kiwixMainPage(canonical), string(src))
}

func TestMainPageMerger_MissingCanonicalLeavesDiskUnchanged(t *testing.T) {
	dirs := newTestTree(t)
	source := filepath.Join(dirs.OutputRoot, "Main_Page.html")
	original := strings.Replace(kiwixMainPage("https://en.example.org/wiki/Main_Page"), `<link rel="canonical" href="https://en.example.org/wiki/Main_Page">`, "", 1)
	writeTestFile(t, source, original)

	fetcher := &stubFetcher{body: livePage}
	_, err := newMerger(t, dirs, fetcher).Merge(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCanonicalReference))
	assert.Empty(t, fetcher.calls)

	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	got, _ := ce.Context().GetString("path")
	assert.Equal(t, source, got)

	after, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, original, string(after))
	assert.NoFileExists(t, filepath.Join(dirs.OutputRoot, "Index.html"))
}

func TestMainPageMerger_MissingRevision(t *testing.T) {
	dirs := newTestTree(t)
	markup := strings.ReplaceAll(kiwixMainPage("https://en.example.org/wiki/Main_Page"), "oldid=", "id=")
	writeTestFile(t, filepath.Join(dirs.OutputRoot, "Main_Page.html"), markup)

	fetcher := &stubFetcher{body: livePage}
	_, err := newMerger(t, dirs, fetcher).Merge(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRevisionIdentifier))
	assert.Empty(t, fetcher.calls)
}

func TestMainPageMerger_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	dirs := newTestTree(t)
	writeTestFile(t, filepath.Join(dirs.OutputRoot, "Main_Page.html"), kiwixMainPage(srv.URL+"/wiki/Main_Page"))

	_, err := newMerger(t, dirs, NewHTTPFetcher(config.FetchConfig{}, srv.Client())).Merge(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailure))
	assert.NoFileExists(t, filepath.Join(dirs.OutputRoot, "Index.html"))
}

func TestMainPageMerger_MergeStructure(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		remote string
	}{
		{
			name:   "live page without content",
			local:  kiwixMainPage("https://en.example.org/wiki/Main_Page"),
			remote: `<html><body><div id="mw-content-text"></div></body></html>`,
		},
		{
			name:   "live page with two content regions",
			local:  kiwixMainPage("https://en.example.org/wiki/Main_Page"),
			remote: `<html><body><div id="content"><div id="mw-content-text"></div></div><div id="content"></div></body></html>`,
		},
		{
			name: "snapshot without insertion point",
			local: strings.Replace(kiwixMainPage("https://en.example.org/wiki/Main_Page"),
				`id="mw-mf-page-center"`, `id="elsewhere"`, 1),
			remote: livePage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := newTestTree(t)
			writeTestFile(t, filepath.Join(dirs.OutputRoot, "Main_Page.html"), tt.local)

			_, err := newMerger(t, dirs, &stubFetcher{body: tt.remote}).Merge(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMergeStructure))
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMerge))
			assert.NoFileExists(t, filepath.Join(dirs.OutputRoot, "Index.html"))
		})
	}
}

func TestMainPageMerger_Paths(t *testing.T) {
	dirs := layout.Resolve("/srv/zim")
	opts := testOptions(dirs)
	opts.KiwixMainPage = "Accueil.html"
	m := NewMainPageMerger(opts, dirs, &stubFetcher{}, nil, testSnapshot)

	assert.Equal(t, filepath.Join(dirs.OutputRoot, "Accueil.html"), m.SourcePath())
	assert.Equal(t, filepath.Join(dirs.OutputRoot, "Index.html"), m.TargetPath())
}
