package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/templates"
)

var testSnapshot = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

// newTestTree creates an unpacked archive whose articles already live in wiki/.
func newTestTree(t *testing.T) layout.Directories {
	t.Helper()
	dirs := layout.Resolve(t.TempDir())
	require.NoError(t, os.MkdirAll(dirs.OutputRoot, 0o750))
	require.NoError(t, os.MkdirAll(dirs.ImageRoot, 0o750))
	return dirs
}

func testOptions(dirs layout.Directories) config.Options {
	opts := config.Default()
	opts.UnpackedDir = dirs.Root
	opts.Site.Title = "Offline Wiki"
	return *opts
}

func testFooter(t *testing.T, site config.SiteConfig) *Footer {
	t.Helper()
	f, err := NewFooter(templates.Default(), site)
	require.NoError(t, err)
	return f
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readTestDoc(t *testing.T, path string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	return doc
}

type stubFetcher struct {
	body  string
	err   error
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, target string) ([]byte, error) {
	f.calls = append(f.calls, target)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}
