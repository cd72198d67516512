package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	articleDuration prom.Histogram
	articleResults  *prom.CounterVec
	articlesTotal   prom.Gauge
	fetchDuration   *prom.HistogramVec
	mainPageResults *prom.CounterVec
	assetsCopied    prom.Counter
	runDuration     prom.Gauge
}

// NewPrometheusRecorder constructs and registers the run metrics on reg (a fresh
// registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		articleDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "zimsite",
			Name:      "article_duration_seconds",
			Help:      "Time spent transforming a single article",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		articleResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "zimsite",
			Name:      "article_results_total",
			Help:      "Article transform results by outcome",
		}, []string{"result"}),
		articlesTotal: prom.NewGauge(prom.GaugeOpts{
			Namespace: "zimsite",
			Name:      "articles_discovered",
			Help:      "Number of article files found under the output root",
		}),
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "zimsite",
			Name:      "mainpage_fetch_duration_seconds",
			Help:      "Duration of the live main page request by HTTP status",
			Buckets:   prom.DefBuckets,
		}, []string{"status"}),
		mainPageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "zimsite",
			Name:      "mainpage_results_total",
			Help:      "Main page merge results by outcome",
		}, []string{"result"}),
		assetsCopied: prom.NewCounter(prom.CounterOpts{
			Namespace: "zimsite",
			Name:      "assets_copied_total",
			Help:      "Image assets copied into the image root",
		}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: "zimsite",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last conversion run",
		}),
	}
	reg.MustRegister(pr.articleDuration, pr.articleResults, pr.articlesTotal, pr.fetchDuration,
		pr.mainPageResults, pr.assetsCopied, pr.runDuration)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// WriteTextfile writes the current metric values to path in the Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveArticleDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.articleDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncArticleResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.articleResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetArticlesTotal(n int) {
	if p == nil {
		return
	}
	p.articlesTotal.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveFetch(status int, d time.Duration) {
	if p == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	p.fetchDuration.WithLabelValues(label).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncMainPageResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.mainPageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddAssetsCopied(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.assetsCopied.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
}
