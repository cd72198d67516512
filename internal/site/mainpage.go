package site

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/layout"
	"git.home.luguber.info/inful/zimsite/internal/logfields"
	"git.home.luguber.info/inful/zimsite/internal/metrics"
	"git.home.luguber.info/inful/zimsite/internal/observability"
	"git.home.luguber.info/inful/zimsite/internal/rewrite"
)

// MergeResult describes a successfully written main page.
type MergeResult struct {
	Path         string
	CanonicalURL string
	RevisionID   string
	FetchURL     string
}

// MainPageMerger builds the landing page from the snapshot's main page and the live
// revision it was exported from.
type MainPageMerger struct {
	opts     config.Options
	dirs     layout.Directories
	fetcher  Fetcher
	footer   *Footer
	snapshot time.Time
	recorder metrics.Recorder
}

// NewMainPageMerger creates a merger for one run.
func NewMainPageMerger(opts config.Options, dirs layout.Directories, fetcher Fetcher, footer *Footer, snapshot time.Time) *MainPageMerger {
	return &MainPageMerger{
		opts:     opts,
		dirs:     dirs,
		fetcher:  fetcher,
		footer:   footer,
		snapshot: snapshot,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder and returns m.
func (m *MainPageMerger) WithRecorder(r metrics.Recorder) *MainPageMerger {
	if r != nil {
		m.recorder = r
	}
	return m
}

// SourcePath is the snapshot's own main page.
func (m *MainPageMerger) SourcePath() string {
	name := m.opts.KiwixMainPage
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return filepath.Join(m.dirs.OutputRoot, name)
}

// TargetPath is where the merged landing page is written.
func (m *MainPageMerger) TargetPath() string {
	return filepath.Join(m.dirs.OutputRoot, m.opts.MainPage)
}

// Merge produces the landing page. Nothing is written unless every step succeeds.
func (m *MainPageMerger) Merge(ctx context.Context) (*MergeResult, error) {
	ctx = observability.WithStage(ctx, "mainpage")
	res, err := m.merge(ctx)
	if err != nil {
		m.recorder.IncMainPageResult(metrics.ResultFailed)
		return nil, err
	}
	m.recorder.IncMainPageResult(metrics.ResultSuccess)
	return res, nil
}

func (m *MainPageMerger) merge(ctx context.Context) (*MergeResult, error) {
	source := m.SourcePath()
	local, raw, err := readDocument(source)
	if err != nil {
		return nil, err
	}

	ref, err := ExtractCanonicalReference(local, raw)
	if err != nil {
		return nil, withPath(err, source)
	}
	target := FetchTarget(ref, m.opts.MainPage)
	observability.DebugContext(ctx, "Fetching live main page",
		logfields.URL(target.String()),
		logfields.Revision(ref.RevisionID))

	body, err := m.fetcher.Fetch(ctx, target.String())
	if err != nil {
		return nil, err
	}
	remote, err := parseDocument(body)
	if err != nil {
		return nil, errors.ParseError("failed to parse live page").WithCause(chain(ErrFetchFailure, err)).
			WithContext("url", target.String()).
			Build()
	}

	if err := mergeContent(local, remote); err != nil {
		return nil, withPath(err, source)
	}

	dest := m.TargetPath()
	eo, err := NewEnhancedOptions(m.opts, m.dirs, dest, m.snapshot, ref.URL.String())
	if err != nil {
		return nil, err
	}
	rewrite.Rework(local, rewrite.MainPageSelector, eo.RewriteContext(),
		rewrite.AppendHTMLPostfix,
		rewrite.PrefixRelativeRoot,
	)
	if err := m.footer.Append(local, eo); err != nil {
		return nil, err
	}
	if err := writeDocument(local, dest); err != nil {
		return nil, err
	}

	observability.InfoContext(ctx, "Main page merged",
		logfields.Path(dest),
		logfields.URL(ref.URL.String()),
		logfields.Revision(ref.RevisionID))
	return &MergeResult{
		Path:         dest,
		CanonicalURL: ref.URL.String(),
		RevisionID:   ref.RevisionID,
		FetchURL:     target.String(),
	}, nil
}

// withPath adds the document path to a classified error that does not carry one yet.
func withPath(err error, path string) error {
	ce, ok := errors.AsClassified(err)
	if !ok {
		return err
	}
	if _, exists := ce.Context().Get("path"); exists {
		return err
	}
	return ce.WithContext("path", path)
}
