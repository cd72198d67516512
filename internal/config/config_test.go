package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

func TestParse_AppliesDefaults(t *testing.T) {
	opts, err := Parse(strings.NewReader("unpacked_dir: /tmp/zim\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/zim", opts.UnpackedDir)
	assert.Equal(t, DefaultMainPage, opts.MainPage)
	assert.Equal(t, DefaultKiwixMainPage, opts.KiwixMainPage)
	assert.Equal(t, ArticleErrorAbort, opts.Articles.OnError)
	assert.Equal(t, 1, opts.Articles.Workers)
	assert.Equal(t, ".html", opts.Articles.Postfix)
	assert.Equal(t, int64(DefaultMaxBodyBytes), opts.Fetch.MaxBodyBytes)
	assert.Zero(t, opts.Fetch.Timeout)
	require.NoError(t, opts.Validate())
}

func TestParse_ExplicitValues(t *testing.T) {
	input := `
unpacked_dir: ./out
main_page: Home.html
kiwix_main_page: Accueil
site:
  title: Wiki
  notice: "Hello *world*"
fetch:
  timeout: 15s
  user_agent: test-agent
articles:
  on_error: skip
  workers: 4
`
	opts, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Home.html", opts.MainPage)
	assert.Equal(t, "Accueil", opts.KiwixMainPage)
	assert.Equal(t, "Wiki", opts.Site.Title)
	assert.Equal(t, 15*time.Second, opts.Fetch.Timeout)
	assert.Equal(t, "test-agent", opts.Fetch.UserAgent)
	assert.Equal(t, ArticleErrorSkip, opts.Articles.OnError)
	assert.Equal(t, 4, opts.Articles.Workers)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("unpacked_dir: x\nrepositories: []\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestParse_EmptyDocument(t *testing.T) {
	opts, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultMainPage, opts.MainPage)
	assert.Error(t, opts.Validate(), "unpacked_dir is still required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		ok     bool
	}{
		{name: "valid", mutate: func(*Options) {}, ok: true},
		{name: "missing dir", mutate: func(o *Options) { o.UnpackedDir = " " }},
		{name: "main page is a path", mutate: func(o *Options) { o.MainPage = "wiki/Index.html" }},
		{name: "empty kiwix page", mutate: func(o *Options) { o.KiwixMainPage = "" }},
		{name: "bad policy", mutate: func(o *Options) { o.Articles.OnError = "retry" }},
		{name: "zero workers", mutate: func(o *Options) { o.Articles.Workers = 0 }},
		{name: "postfix without dot", mutate: func(o *Options) { o.Articles.Postfix = "html" }},
		{name: "negative timeout", mutate: func(o *Options) { o.Fetch.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			opts.UnpackedDir = "/tmp/zim"
			tt.mutate(opts)
			err := opts.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("ZIMSITE_TEST_DIR", "/data/zim")
	path := filepath.Join(t.TempDir(), "zimsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unpacked_dir: ${ZIMSITE_TEST_DIR}\n"), 0o600))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/zim", opts.UnpackedDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zimsite.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err, "existing file must not be overwritten without force")
	require.NoError(t, Init(path, true))

	t.Setenv("ZIM_UNPACKED_DIR", "/srv/zim")
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/zim", opts.UnpackedDir)
	require.NoError(t, opts.Validate())
}
