package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/logfields"
	"git.home.luguber.info/inful/zimsite/internal/metrics"
	"git.home.luguber.info/inful/zimsite/internal/observability"
	"git.home.luguber.info/inful/zimsite/internal/progress"
	"git.home.luguber.info/inful/zimsite/internal/site"
	"git.home.luguber.info/inful/zimsite/internal/templates"
)

// Runner executes conversion runs. The zero value is not usable; call NewRunner.
type Runner struct {
	fetcher   site.Fetcher
	recorder  metrics.Recorder
	progress  progress.Reporter
	templates *templates.Set
	now       func() time.Time
}

// NewRunner creates a Runner with no-op metrics and progress.
func NewRunner() *Runner {
	return &Runner{
		recorder: metrics.NoopRecorder{},
		progress: progress.Noop{},
		now:      time.Now,
	}
}

// WithFetcher replaces the HTTP fetcher built from the fetch configuration (for testing).
func (r *Runner) WithFetcher(f site.Fetcher) *Runner {
	r.fetcher = f
	return r
}

// WithRecorder sets the metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithProgress sets the progress reporter for the article pass.
func (r *Runner) WithProgress(p progress.Reporter) *Runner {
	if p != nil {
		r.progress = p
	}
	return r
}

// WithTemplates uses set instead of loading templates from the configuration.
func (r *Runner) WithTemplates(set *templates.Set) *Runner {
	r.templates = set
	return r
}

// WithClock overrides the snapshot date source.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	if now != nil {
		r.now = now
	}
	return r
}

// Run executes the selected stages. Setup and filesystem failures stop the run
// immediately. A main page failure is reported and the article pass still runs; the
// returned error then joins both outcomes.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: observability.NewRunID(), StartTime: start}
	ctx = observability.WithRunID(ctx, result.RunID)
	opts := req.Options

	finish := func(err error) (*Result, error) {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		r.recorder.ObserveRunDuration(result.Duration)
		switch {
		case err == nil:
			result.Status = StatusSuccess
		case result.ArticlesProcessed > 0 || result.MainPage != nil:
			result.Status = StatusPartial
		default:
			result.Status = StatusFailed
		}
		observability.InfoContext(ctx, "Run finished",
			slog.String("status", string(result.Status)),
			logfields.Count(result.ArticlesProcessed),
			logfields.Total(result.ArticlesTotal),
			logfields.Since(start))
		return result, err
	}

	if opts.UnpackedDir == "" {
		return finish(errors.ValidationError("unpacked archive directory is required").Build())
	}
	dirs := layout.Resolve(opts.UnpackedDir)

	if req.Stages.MainPage || req.Stages.Articles {
		moved, err := layout.MoveArticles(dirs)
		if err != nil {
			return finish(err)
		}
		result.Moved = moved
		if moved {
			observability.InfoContext(ctx, "Moved article folder", logfields.Path(dirs.OutputRoot))
		}
	}

	if req.Stages.Assets && opts.Assets.SourceDir != "" {
		n, err := layout.CopyAssets(opts.Assets.SourceDir, dirs.ImageRoot)
		r.recorder.AddAssetsCopied(n)
		result.AssetsCopied = n
		if err != nil {
			return finish(err)
		}
		observability.InfoContext(observability.WithStage(ctx, "assets"), "Copied assets",
			logfields.Count(n), logfields.Path(dirs.ImageRoot))
	}

	set := r.templates
	if set == nil {
		loaded, err := templates.Load(opts.Templates)
		if err != nil {
			return finish(err)
		}
		set = loaded
	}
	footer, err := site.NewFooter(set, opts.Site)
	if err != nil {
		return finish(err)
	}
	snapshot := r.now()

	var mainErr error
	merger := site.NewMainPageMerger(opts, dirs, r.fetcherFor(opts), footer, snapshot).WithRecorder(r.recorder)
	if req.Stages.MainPage {
		res, err := merger.Merge(ctx)
		if err != nil {
			mainErr = err
			r.progress.Error(err)
			logError(ctx, "Main page merge failed", err)
		} else {
			result.MainPage = res
		}
	}

	var articleErr error
	if req.Stages.Articles {
		tr := site.NewArticleTransformer(opts, dirs, footer, snapshot)
		skip := map[string]bool{merger.TargetPath(): true}
		articleErr = r.runArticles(ctx, tr, dirs.OutputRoot, opts, skip, result)
	}

	if req.Stages.Redirect {
		path, err := InsertIndexRedirect(set, dirs, opts)
		if err != nil {
			return finish(stderrors.Join(mainErr, articleErr, err))
		}
		result.RedirectPath = path
	}

	return finish(stderrors.Join(mainErr, articleErr))
}

func (r *Runner) fetcherFor(opts config.Options) site.Fetcher {
	if r.fetcher != nil {
		return r.fetcher
	}
	return site.NewHTTPFetcher(opts.Fetch, nil).WithObserver(r.recorder.ObserveFetch)
}

// logError logs err with its classification attributes when it has them.
func logError(ctx context.Context, msg string, err error) {
	if ce, ok := errors.AsClassified(err); ok {
		attrs := append([]slog.Attr{logfields.Error(err)}, ce.LogAttrs()...)
		observability.ErrorContext(ctx, msg, attrs...)
		return
	}
	observability.ErrorContext(ctx, msg, logfields.Error(err))
}
