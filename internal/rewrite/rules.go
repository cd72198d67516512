package rewrite

import (
	"path"
	"strings"
)

// WikiPrefix is the root-relative path prefix of in-wiki pages on the live site.
const WikiPrefix = "/wiki/"

// Selectors used by callers. Image anchors are excluded because they already resolve.
const (
	imageExclusions = `:not([href$=".svg"]):not([href$=".png"]):not([href$=".jpg"])`

	// MainPageSelector matches the root-relative wiki links of the live page.
	MainPageSelector = `a[href^="/wiki/"]` + imageExclusions

	// ArticleSelector matches the links of an exported article that may point at other pages.
	ArticleSelector = `a[href]:not([href^="#"]):not([href^="http:"]):not([href^="https:"]):not([href^="//"])` + imageExclusions
)

// knownExtensions are path suffixes that mark an href as already pointing at a file.
var knownExtensions = map[string]bool{
	".html": true, ".htm": true,
	".png": true, ".jpg": true, ".jpeg": true, ".svg": true, ".gif": true, ".webp": true,
	".css": true, ".js": true, ".json": true, ".xml": true, ".txt": true, ".pdf": true,
	".ogg": true, ".ogv": true, ".oga": true, ".webm": true, ".mp3": true, ".mp4": true,
}

// externalSchemes are the URL schemes that never point into the exported wiki.
// Page titles such as "Help:Contents" contain colons too, so a colon alone is not enough.
var externalSchemes = []string{"http:", "https:", "ftp:", "mailto:", "tel:", "data:", "javascript:"}

// AppendHTMLPostfix appends ctx.Postfix to hrefs that point at in-wiki pages. Hrefs that
// are empty, fragment-only, external, root-relative outside /wiki/, dot segments, or
// already end in a known file extension are returned unchanged. Query and fragment
// are kept after the new suffix.
func AppendHTMLPostfix(href string, ctx Context) string {
	if href == "" || strings.HasPrefix(href, "#") || isExternal(href) {
		return href
	}

	target, suffix := splitSuffix(href)
	if target == "" || strings.HasSuffix(target, "/") {
		return href
	}
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, WikiPrefix) {
		return href
	}
	if base := path.Base(target); base == "." || base == ".." {
		return href
	}
	if ctx.Postfix != "" && strings.HasSuffix(target, ctx.Postfix) {
		return href
	}
	if knownExtensions[strings.ToLower(path.Ext(target))] {
		return href
	}
	return target + ctx.Postfix + suffix
}

// PrefixRelativeRoot rewrites a root-relative "/wiki/<page>" href into a path relative
// to the document, using ctx.RelativeRootPath. Other hrefs are returned unchanged.
func PrefixRelativeRoot(href string, ctx Context) string {
	rest, ok := strings.CutPrefix(href, WikiPrefix)
	if !ok {
		return href
	}

	root := strings.TrimSuffix(ctx.RelativeRootPath, "/")
	if root == "" || root == "." {
		return rest
	}
	return root + "/" + rest
}

func isExternal(href string) bool {
	if strings.HasPrefix(href, "//") {
		return true
	}
	lower := strings.ToLower(href)
	for _, scheme := range externalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// splitSuffix separates the path part of href from its "?query" or "#fragment" tail.
func splitSuffix(href string) (target, suffix string) {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		return href[:i], href[i:]
	}
	return href, ""
}
