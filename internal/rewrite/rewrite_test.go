package rewrite

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func hrefs(doc *goquery.Document) []string {
	var out []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out = append(out, href)
	})
	return out
}

func TestRework_MainPageSelector(t *testing.T) {
	doc := parse(t, `<html><body>
		<a href="/wiki/Cat">cat</a>
		<a href="/wiki/File:Logo.svg">logo</a>
		<a href="/wiki/Photo.png">photo</a>
		<a href="/wiki/Scan.jpg">scan</a>
		<a href="https://example.org/wiki/Dog">external</a>
		<a href="#section">anchor</a>
		<a>no href</a>
	</body></html>`)

	ctx := Context{RelativeRootPath: ".", Postfix: ".html"}
	out := Rework(doc, MainPageSelector, ctx, AppendHTMLPostfix, PrefixRelativeRoot)

	assert.Same(t, doc, out)
	assert.Equal(t, []string{
		"Cat.html",
		"/wiki/File:Logo.svg",
		"/wiki/Photo.png",
		"/wiki/Scan.jpg",
		"https://example.org/wiki/Dog",
		"#section",
		"",
	}, hrefs(doc))
}

func TestRework_ArticleSelector(t *testing.T) {
	doc := parse(t, `<html><body>
		<a href="Dog">dog</a>
		<a href="Dog.html">already</a>
		<a href="../I/m/Dog.jpg">image</a>
		<a href="http://example.org">external</a>
		<a href="#cite_note-1">cite</a>
		<a href="/wiki/Cat">root relative</a>
		<a href="/w/index.php?title=Cat&amp;action=history">history</a>
		<a href="..">up</a>
	</body></html>`)

	ctx := Context{RelativeRootPath: ".", Postfix: ".html"}
	Rework(doc, ArticleSelector, ctx, AppendHTMLPostfix, PrefixRelativeRoot)

	assert.Equal(t, []string{
		"Dog.html",
		"Dog.html",
		"../I/m/Dog.jpg",
		"http://example.org",
		"#cite_note-1",
		"Cat.html",
		"/w/index.php?title=Cat&action=history",
		"..",
	}, hrefs(doc))
}

func TestRework_NoRulesLeavesDocument(t *testing.T) {
	doc := parse(t, `<a href="/wiki/Cat">cat</a>`)
	Rework(doc, MainPageSelector, Context{})
	assert.Equal(t, []string{"/wiki/Cat"}, hrefs(doc))
}
