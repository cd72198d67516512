package site

import (
	"html/template"

	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/templates"
)

// Footer renders the footer fragment and appends it to documents. The site
// parameters it was built with are the only source for title, license and notice.
type Footer struct {
	set    *templates.Set
	site   config.SiteConfig
	notice template.HTML
}

// NewFooter renders the configured notice once and keeps it for every page.
func NewFooter(set *templates.Set, site config.SiteConfig) (*Footer, error) {
	if set == nil {
		set = templates.Default()
	}
	notice, err := templates.RenderNotice(site.Notice)
	if err != nil {
		return nil, err
	}
	return &Footer{set: set, site: site, notice: notice}, nil
}

// Append renders the footer for eo and appends it as the last child of body.
// It does not look for an existing footer, so appending twice yields two footers.
func (f *Footer) Append(doc *goquery.Document, eo EnhancedOptions) error {
	fragment, err := f.set.RenderFooter(templates.FooterData{
		Title:        f.site.Title,
		MainPage:     eo.MainPage,
		RootPath:     eo.RelativeRootPath,
		ImagePath:    eo.RelativeImagePath,
		CanonicalURL: eo.CanonicalURL,
		LicenseURL:   f.site.LicenseURL,
		Notice:       f.notice,
		SnapshotDate: eo.SnapshotDate,
	})
	if err != nil {
		return err
	}
	doc.Find("body").AppendHtml(fragment)
	return nil
}
