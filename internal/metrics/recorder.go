package metrics

import "time"

// ResultLabel enumerates per-item result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder defines observability hooks for a conversion run.
type Recorder interface {
	ObserveArticleDuration(d time.Duration)
	IncArticleResult(result ResultLabel)
	SetArticlesTotal(n int)
	ObserveFetch(status int, d time.Duration) // status 0 means the request never got a response
	IncMainPageResult(result ResultLabel)
	AddAssetsCopied(n int)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveArticleDuration(time.Duration) {}
func (NoopRecorder) IncArticleResult(ResultLabel)         {}
func (NoopRecorder) SetArticlesTotal(int)                 {}
func (NoopRecorder) ObserveFetch(int, time.Duration)      {}
func (NoopRecorder) IncMainPageResult(ResultLabel)        {}
func (NoopRecorder) AddAssetsCopied(int)                  {}
func (NoopRecorder) ObserveRunDuration(time.Duration)     {}
