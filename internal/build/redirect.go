package build

import (
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/templates"
)

const indexFile = "index.html"

// InsertIndexRedirect writes <root>/index.html redirecting to the merged main page
// and returns its path. An existing index.html is replaced.
func InsertIndexRedirect(set *templates.Set, dirs layout.Directories, opts config.Options) (string, error) {
	out, err := set.RenderRedirect(templates.RedirectData{
		Title:  opts.Site.Title,
		Target: path.Join(filepath.Base(dirs.OutputRoot), opts.MainPage),
	})
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dirs.Root, indexFile)
	if err := os.WriteFile(dest, []byte(out), 0o644); err != nil { //nolint:gosec // public site content
		return "", errors.FileSystemError("failed to write index redirect").WithCause(err).
			WithContext("path", dest).
			Build()
	}
	return dest, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
