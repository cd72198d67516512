package build

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/logfields"
	"git.home.luguber.info/inful/zimsite/internal/metrics"
	"git.home.luguber.info/inful/zimsite/internal/observability"
)

// ArticleProcessor transforms one article file in place.
type ArticleProcessor interface {
	Transform(ctx context.Context, path string) error
}

// articlePass tracks the shared counters of one article pass.
type articlePass struct {
	mu       sync.Mutex
	progress func(int)
	result   *Result
	firstErr error
}

// record counts one finished article and reports whether the pass should go on.
// Fatal errors stop the pass under either policy.
func (p *articlePass) record(err error, policy config.ArticleErrorPolicy) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.result.ArticlesFailed++
		if p.firstErr == nil {
			p.firstErr = err
		}
	}
	p.result.ArticlesProcessed++
	p.progress(p.result.ArticlesProcessed)
	if err == nil {
		return true
	}
	return policy == config.ArticleErrorSkip && !errors.IsFatal(err)
}

// runArticles counts the files below root, then transforms each of them except those
// in skip. With the abort policy the first failure stops the pass and is returned.
// With the skip policy failures are logged and the first one is returned at the end.
func (r *Runner) runArticles(ctx context.Context, tr ArticleProcessor, root string, opts config.Options, skip map[string]bool, result *Result) error {
	ctx = observability.WithStage(ctx, "articles")

	total, err := layout.Count(root)
	if err != nil {
		return err
	}
	for p := range skip {
		if fileExists(p) {
			total--
		}
	}
	total = max(total, 0)
	result.ArticlesTotal = total
	r.recorder.SetArticlesTotal(total)
	observability.InfoContext(ctx, "Processing articles",
		logfields.Total(total),
		logfields.Policy(string(opts.Articles.OnError)),
		slog.Int("workers", opts.Articles.Workers))

	r.progress.Start(total, 0)
	defer r.progress.Stop()

	pass := &articlePass{progress: r.progress.Update, result: result}
	policy := opts.Articles.OnError

	process := func(ctx context.Context, path string) bool {
		start := time.Now()
		err := tr.Transform(ctx, path)
		r.recorder.ObserveArticleDuration(time.Since(start))
		if err != nil {
			r.recorder.IncArticleResult(metrics.ResultFailed)
			logError(observability.WithPath(ctx, path), "Article failed", err)
		} else {
			r.recorder.IncArticleResult(metrics.ResultSuccess)
		}
		return pass.record(err, policy)
	}

	workers := max(opts.Articles.Workers, 1)
	if workers == 1 {
		for path, walkErr := range layout.Walk(root) {
			if walkErr != nil {
				return walkErr
			}
			if skip[path] {
				r.recorder.IncArticleResult(metrics.ResultSkipped)
				continue
			}
			if !process(ctx, path) {
				break
			}
		}
		return pass.firstErr
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := make(chan string)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for path := range paths {
				if ctx.Err() != nil {
					continue
				}
				if !process(ctx, path) {
					cancel()
				}
			}
		}()
	}

	var walkErr error
	for path, err := range layout.Walk(root) {
		if err != nil {
			walkErr = err
			break
		}
		if skip[path] {
			r.recorder.IncArticleResult(metrics.ResultSkipped)
			continue
		}
		select {
		case paths <- path:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(paths)
	wg.Wait()

	if walkErr != nil {
		return walkErr
	}
	return pass.firstErr
}
