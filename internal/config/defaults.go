package config

const (
	DefaultMainPage      = "Index.html"
	DefaultKiwixMainPage = "Main_Page"
	DefaultPostfix       = ".html"
	DefaultUserAgent     = "zimsite/1.0 (static site export)"
	DefaultMaxBodyBytes  = 32 * 1024 * 1024
	DefaultSiteTitle     = "Offline Encyclopedia"
)

// Default returns Options with every default applied and no archive root.
func Default() *Options {
	opts := &Options{}
	opts.ApplyDefaults()
	return opts
}

// ApplyDefaults fills zero-valued fields. It never overwrites explicit values.
func (o *Options) ApplyDefaults() {
	if o.MainPage == "" {
		o.MainPage = DefaultMainPage
	}
	if o.KiwixMainPage == "" {
		o.KiwixMainPage = DefaultKiwixMainPage
	}
	if o.Site.Title == "" {
		o.Site.Title = DefaultSiteTitle
	}
	if o.Fetch.UserAgent == "" {
		o.Fetch.UserAgent = DefaultUserAgent
	}
	if o.Fetch.MaxBodyBytes <= 0 {
		o.Fetch.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.Articles.OnError == "" {
		o.Articles.OnError = ArticleErrorAbort
	} else if p := NormalizeArticleErrorPolicy(string(o.Articles.OnError)); p != "" {
		o.Articles.OnError = p
	}
	if o.Articles.Workers <= 0 {
		o.Articles.Workers = 1
	}
	if o.Articles.Postfix == "" {
		o.Articles.Postfix = DefaultPostfix
	}
}
