package site

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

const canonicalSelector = `link[rel="canonical"]`

var revisionPattern = regexp.MustCompile(`oldid=(\d+)`)

// CanonicalReference identifies the live revision a snapshot page was built from.
type CanonicalReference struct {
	URL        *url.URL
	RevisionID string
}

// ExtractCanonicalReference reads both halves of the reference from a document and its
// raw markup. Either half missing is an error.
func ExtractCanonicalReference(doc *goquery.Document, raw []byte) (CanonicalReference, error) {
	canonical, err := ExtractCanonicalURL(doc)
	if err != nil {
		return CanonicalReference{}, err
	}
	revision, err := ExtractRevisionID(raw)
	if err != nil {
		return CanonicalReference{}, err
	}
	return CanonicalReference{URL: canonical, RevisionID: revision}, nil
}

// ExtractCanonicalURL returns the absolute URL of the document's canonical link.
func ExtractCanonicalURL(doc *goquery.Document) (*url.URL, error) {
	href := strings.TrimSpace(doc.Find(canonicalSelector).First().AttrOr("href", ""))
	if href == "" {
		return nil, errors.ParseError("could not parse out canonical url").WithCause(ErrMissingCanonicalReference).Build()
	}

	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, errors.ParseError("canonical url is not absolute").WithCause(chain(ErrMissingCanonicalReference, err)).
			WithContext("url", href).
			Build()
	}
	return u, nil
}

// ExtractRevisionID returns the digits of the first oldid=<digits> token in raw.
func ExtractRevisionID(raw []byte) (string, error) {
	m := revisionPattern.FindSubmatch(raw)
	if m == nil {
		return "", errors.ParseError("could not parse out the canonical revision id").WithCause(ErrMissingRevisionIdentifier).Build()
	}
	return string(m[1]), nil
}

// FetchTarget points the canonical URL at /wiki/<main page name without extension>,
// pinned to ref's revision through the oldid query parameter.
func FetchTarget(ref CanonicalReference, mainPage string) *url.URL {
	target := *ref.URL
	target.Path = "/wiki/" + strings.TrimSuffix(mainPage, path.Ext(mainPage))
	target.RawPath = ""

	query := target.Query()
	query.Add("oldid", ref.RevisionID)
	target.RawQuery = query.Encode()
	return &target
}
