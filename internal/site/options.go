package site

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/rewrite"
)

// EnhancedOptions is the base configuration extended with what the link rules and the
// footer need for one document. Build it with NewEnhancedOptions and do not modify it.
type EnhancedOptions struct {
	config.Options

	SnapshotDate time.Time
	// RelativeFilepath is the document's path below the output root.
	RelativeFilepath string
	// RelativeRootPath leads from the document's directory to the output root.
	RelativeRootPath string
	// RelativeImagePath leads from the document's directory to the image root.
	RelativeImagePath string
	CanonicalURL      string
}

// NewEnhancedOptions derives the per-document options for the file at docPath.
// All relative paths are slash-separated so they can be used in hrefs directly.
func NewEnhancedOptions(opts config.Options, dirs layout.Directories, docPath string, snapshot time.Time, canonicalURL string) (EnhancedOptions, error) {
	docDir := filepath.Dir(docPath)

	relFile, err := filepath.Rel(dirs.OutputRoot, docPath)
	if err != nil {
		return EnhancedOptions{}, relError(err, docPath)
	}
	relRoot, err := filepath.Rel(docDir, dirs.OutputRoot)
	if err != nil {
		return EnhancedOptions{}, relError(err, docPath)
	}
	relImages, err := filepath.Rel(docDir, dirs.ImageRoot)
	if err != nil {
		return EnhancedOptions{}, relError(err, docPath)
	}

	return EnhancedOptions{
		Options:           opts,
		SnapshotDate:      snapshot,
		RelativeFilepath:  filepath.ToSlash(relFile),
		RelativeRootPath:  filepath.ToSlash(relRoot),
		RelativeImagePath: filepath.ToSlash(relImages),
		CanonicalURL:      canonicalURL,
	}, nil
}

// RewriteContext exposes the fields the link rules read.
func (e EnhancedOptions) RewriteContext() rewrite.Context {
	return rewrite.Context{
		RelativeRootPath:  e.RelativeRootPath,
		RelativeImagePath: e.RelativeImagePath,
		Postfix:           e.Articles.Postfix,
	}
}

func relError(err error, docPath string) error {
	return errors.InternalError("failed to relativize document path").WithCause(err).
		WithContext("path", docPath).
		Build()
}
