package config

import "time"

// ArticleErrorPolicy decides what the runner does when a single article fails.
type ArticleErrorPolicy string

const (
	// ArticleErrorAbort stops the whole article pass at the first failure.
	ArticleErrorAbort ArticleErrorPolicy = "abort"
	// ArticleErrorSkip logs the failure, counts it, and continues with the next article.
	ArticleErrorSkip ArticleErrorPolicy = "skip"
)

// Options is the read-only processing configuration for one conversion run.
type Options struct {
	// UnpackedDir is the root of the extracted ZIM archive.
	UnpackedDir string `yaml:"unpacked_dir"`
	// MainPage is the file name of the landing page produced by the merge (e.g. "Index.html").
	MainPage string `yaml:"main_page"`
	// KiwixMainPage is the offline snapshot's own main page name, without extension.
	KiwixMainPage string `yaml:"kiwix_main_page"`

	Site      SiteConfig      `yaml:"site"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Articles  ArticlesConfig  `yaml:"articles"`
	Assets    AssetsConfig    `yaml:"assets"`
	Templates TemplatesConfig `yaml:"templates"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SiteConfig holds the parameters rendered into the footer fragment.
type SiteConfig struct {
	Title      string `yaml:"title"`
	Notice     string `yaml:"notice,omitempty"` // Markdown, rendered and sanitized before use
	LicenseURL string `yaml:"license_url,omitempty"`
}

// FetchConfig controls the single request to the live source site.
type FetchConfig struct {
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout,omitempty"` // zero means no timeout
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ArticlesConfig controls the per-article pass.
type ArticlesConfig struct {
	OnError ArticleErrorPolicy `yaml:"on_error"`
	Workers int                `yaml:"workers"`
	Postfix string             `yaml:"postfix"`
}

// AssetsConfig names an optional extra directory whose files are copied into the image root.
type AssetsConfig struct {
	SourceDir string `yaml:"source_dir,omitempty"`
}

// TemplatesConfig optionally overrides the embedded templates with files on disk.
type TemplatesConfig struct {
	Footer   string `yaml:"footer,omitempty"`
	Redirect string `yaml:"redirect,omitempty"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}
