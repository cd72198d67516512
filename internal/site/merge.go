package site

import (
	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// Element selectors of the MediaWiki skins involved in the merge.
const (
	contentSelector     = "#content"
	contentTextSelector = "#mw-content-text"
	pageCenterSelector  = "#mw-mf-page-center"
	offlineNoteSelector = "#mw-content-text > div:last-child"
)

// remoteChrome is removed from the live content before it is spliced in.
var remoteChrome = []string{
	"#siteNotice",
	"#firstHeading",
	"#siteSub",
	"#contentSub",
	"#catlinks",
	"a.mw-jump-link",
}

// mergeContent splices the live #content of remote into local, carrying over the
// offline note of the snapshot. Every anchor is checked before either tree is
// modified, so a structure error leaves both documents untouched.
func mergeContent(local, remote *goquery.Document) error {
	content := remote.Find(contentSelector)
	if content.Length() != 1 {
		return structureError("expected exactly one content element in live page", contentSelector, content.Length())
	}
	remoteText := content.Find(contentTextSelector)
	if remoteText.Length() == 0 {
		return structureError("live page has no content text element", contentTextSelector, 0)
	}
	if local.Find(contentTextSelector).Length() == 0 {
		return structureError("snapshot page has no content text element", contentTextSelector, 0)
	}
	center := local.Find(pageCenterSelector)
	if center.Length() != 1 {
		return structureError("expected exactly one insertion point in snapshot page", pageCenterSelector, center.Length())
	}
	if center.Closest(contentSelector).Length() > 0 {
		return structureError("insertion point is inside the content being replaced", pageCenterSelector, 1)
	}

	content.AddClass("content")
	for _, sel := range remoteChrome {
		remote.Find(sel).Remove()
	}

	if note := local.Find(offlineNoteSelector).First(); note.Length() > 0 {
		remoteText.First().AppendSelection(note)
	}

	local.Find(contentSelector).Remove()
	center.PrependSelection(content)
	return nil
}

func structureError(message, selector string, found int) error {
	return errors.MergeError(message).WithCause(ErrMergeStructure).
		WithContext("selector", selector).
		WithContext("found", found).
		Build()
}
