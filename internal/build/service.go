package build

import (
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/site"
)

// Stages selects which parts of the pipeline a run executes.
type Stages struct {
	Assets   bool
	MainPage bool
	Articles bool
	Redirect bool
}

// AllStages is the full conversion.
func AllStages() Stages {
	return Stages{Assets: true, MainPage: true, Articles: true, Redirect: true}
}

// Request contains all inputs of one run.
type Request struct {
	// Options is the loaded and validated configuration.
	Options config.Options

	Stages Stages
}

// Result contains the outcome of a run.
type Result struct {
	Status Status
	RunID  string

	// Moved reports whether the article folder was renamed during this run.
	Moved        bool
	AssetsCopied int

	// MainPage is nil when the stage did not run or failed.
	MainPage *site.MergeResult

	ArticlesTotal     int
	ArticlesProcessed int
	ArticlesFailed    int

	RedirectPath string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status represents the outcome of a run.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusPartial means the run finished but some pages were not produced.
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// IsSuccess returns true if every selected stage completed without error.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
