package templates

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

var (
	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// RenderNotice converts the configured Markdown notice to sanitized HTML for the footer.
// An empty notice renders to an empty string.
func RenderNotice(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", errors.TemplateError("failed to render notice").WithCause(err).Build()
	}

	// #nosec G203 -- the markup has just been sanitized by bluemonday.
	return template.HTML(strings.TrimSpace(policy.Sanitize(buf.String()))), nil
}
