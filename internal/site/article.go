package site

import (
	"context"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/rewrite"
)

// ArticleTransformer rewrites a single article file in place. It holds no state that
// changes between calls and may be shared by concurrent workers.
type ArticleTransformer struct {
	opts     config.Options
	dirs     layout.Directories
	footer   *Footer
	snapshot time.Time
}

// NewArticleTransformer creates a transformer for one run.
func NewArticleTransformer(opts config.Options, dirs layout.Directories, footer *Footer, snapshot time.Time) *ArticleTransformer {
	return &ArticleTransformer{opts: opts, dirs: dirs, footer: footer, snapshot: snapshot}
}

// Transform rewrites the links of the article at path, appends the footer and writes
// the result back over the original file.
func (t *ArticleTransformer) Transform(_ context.Context, path string) error {
	doc, _, err := readDocument(path)
	if err != nil {
		return err
	}

	canonical := ""
	if u, cerr := ExtractCanonicalURL(doc); cerr == nil {
		canonical = u.String()
	}

	eo, err := NewEnhancedOptions(t.opts, t.dirs, path, t.snapshot, canonical)
	if err != nil {
		return err
	}

	rewrite.Rework(doc, rewrite.ArticleSelector, eo.RewriteContext(),
		rewrite.AppendHTMLPostfix,
		rewrite.PrefixRelativeRoot,
	)
	if err := t.footer.Append(doc, eo); err != nil {
		return err
	}
	return writeDocument(doc, path)
}
