// Package rewrite rewrites anchor hrefs in a parsed HTML document through an ordered
// pipeline of pure rules.
package rewrite

import (
	"github.com/PuerkitoBio/goquery"
)

// Context is the read-only data a rule may consult besides the href itself.
type Context struct {
	// RelativeRootPath is the slash-separated path from the document's directory to the
	// site's wiki root ("." when the document sits in the root).
	RelativeRootPath string
	// RelativeImagePath is the path from the document's directory to the image root.
	RelativeImagePath string
	// Postfix is the file extension appended to page links (".html").
	Postfix string
}

// Rule transforms one href value. Rules must be pure: no I/O and no state.
type Rule func(href string, ctx Context) string

// Rework applies rules, in order, to the href of every anchor matching selector and
// returns doc for chaining. Anchors without an href attribute are left alone.
func Rework(doc *goquery.Document, selector string, ctx Context, rules ...Rule) *goquery.Document {
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		rewritten := Apply(href, ctx, rules...)
		if rewritten != href {
			s.SetAttr("href", rewritten)
		}
	})
	return doc
}

// Apply runs rules over a single href.
func Apply(href string, ctx Context, rules ...Rule) string {
	for _, rule := range rules {
		href = rule(href, ctx)
	}
	return href
}
