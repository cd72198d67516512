// Package templates holds the HTML fragments rendered into the generated site: the
// footer appended to every page and the root index redirect.
//
// The embedded templates are parsed once per process and never modified afterwards.
// Overrides from configuration produce a new Set; the shared default is left intact.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

//go:embed files/*.tmpl
var files embed.FS

const (
	footerName   = "footer.html.tmpl"
	redirectName = "index_redirect.html.tmpl"
)

var funcs = template.FuncMap{
	"join": func(elem ...string) string { return path.Join(elem...) },
}

// Set is an immutable pair of parsed templates.
type Set struct {
	footer   *template.Template
	redirect *template.Template
}

// FooterData is the data the footer template is rendered with.
type FooterData struct {
	Title        string
	MainPage     string
	RootPath     string
	ImagePath    string
	CanonicalURL string
	LicenseURL   string
	Notice       template.HTML
	SnapshotDate time.Time
}

// RedirectData is the data the index redirect template is rendered with.
type RedirectData struct {
	Title  string
	Target string
}

var defaultSet = sync.OnceValue(func() *Set {
	return &Set{
		footer:   template.Must(template.New(footerName).Funcs(funcs).ParseFS(files, "files/"+footerName)),
		redirect: template.Must(template.New(redirectName).Funcs(funcs).ParseFS(files, "files/"+redirectName)),
	}
})

// Default returns the process-wide set built from the embedded templates.
func Default() *Set {
	return defaultSet()
}

// Load returns the default set with any configured template files swapped in.
func Load(cfg config.TemplatesConfig) (*Set, error) {
	set := *Default()
	if cfg.Footer != "" {
		tpl, err := parseFile(cfg.Footer)
		if err != nil {
			return nil, err
		}
		set.footer = tpl
	}
	if cfg.Redirect != "" {
		tpl, err := parseFile(cfg.Redirect)
		if err != nil {
			return nil, err
		}
		set.redirect = tpl
	}
	return &set, nil
}

func parseFile(p string) (*template.Template, error) {
	data, err := os.ReadFile(filepath.Clean(p))
	if err != nil {
		return nil, errors.TemplateError("failed to read template").
			WithCause(err).
			WithContext("path", p).
			Build()
	}
	tpl, err := template.New(filepath.Base(p)).Funcs(funcs).Parse(string(data))
	if err != nil {
		return nil, errors.TemplateError("failed to parse template").
			WithCause(err).
			WithContext("path", p).
			Build()
	}
	return tpl, nil
}

// RenderFooter renders the footer fragment.
func (s *Set) RenderFooter(data FooterData) (string, error) {
	return execute(s.footer, data)
}

// RenderRedirect renders the full index redirect page.
func (s *Set) RenderRedirect(data RedirectData) (string, error) {
	return execute(s.redirect, data)
}

func execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", errors.TemplateError("failed to render template").WithCause(err).
			WithContext("template", tpl.Name()).
			Build()
	}
	return buf.String(), nil
}
