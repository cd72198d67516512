// Package site turns exported ZIM articles into static site pages.
//
// ArticleTransformer rewrites the links of one article and appends the footer.
// MainPageMerger builds the landing page: it pins the live main page to the revision
// the snapshot was taken from, fetches it, splices its content region into the
// offline page shell, rewrites the links, and appends the footer.
//
// Every failure is returned as a classified error wrapping one of the sentinel errors
// below, so callers can branch with errors.Is and still report path or URL context.
package site
