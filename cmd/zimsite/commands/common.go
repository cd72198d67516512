package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/zimsite/internal/build"
	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/logfields"
	"git.home.luguber.info/inful/zimsite/internal/metrics"
	"git.home.luguber.info/inful/zimsite/internal/progress"
)

const defaultConfigPath = "zimsite.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"zimsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Convert the unpacked archive into a static site (all stages)"`
	Articles ArticlesCmd `cmd:"" help:"Rewrite links and append the footer to every article"`
	MainPage MainPageCmd `cmd:"" name:"mainpage" help:"Build the landing page from the live revision of the main page"`
	Redirect RedirectCmd `cmd:"" help:"Write the root index.html redirect"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Overrides are the configuration values that can be set from the command line.
// Zero values leave the configuration untouched.
type Overrides struct {
	Dir             string `arg:"" optional:"" type:"path" help:"Unpacked archive directory (overrides unpacked_dir)"`
	MainPage        string `name:"main-page" help:"File name of the merged landing page"`
	KiwixMainPage   string `name:"kiwix-main-page" help:"Name of the snapshot's own main page"`
	OnError         string `name:"on-error" help:"Article failure policy (abort|skip)"`
	Workers         int    `help:"Number of articles processed concurrently"`
	MetricsTextfile string `name:"metrics-textfile" type:"path" help:"Write Prometheus metrics to this file after the run"`
}

// LoadOptions reads the configuration file, applies o, and validates the result.
// A missing file at the default path is not an error; defaults are used instead.
func LoadOptions(configPath string, o Overrides) (*config.Options, error) {
	opts, err := config.Load(configPath)
	switch {
	case errors.HasCategory(err, errors.CategoryNotFound) && configPath == defaultConfigPath:
		opts = config.Default()
	case err != nil:
		return nil, err
	}

	if o.Dir != "" {
		opts.UnpackedDir = o.Dir
	}
	if o.MainPage != "" {
		opts.MainPage = o.MainPage
	}
	if o.KiwixMainPage != "" {
		opts.KiwixMainPage = o.KiwixMainPage
	}
	if o.OnError != "" {
		opts.Articles.OnError = config.ArticleErrorPolicy(o.OnError)
		if p := config.NormalizeArticleErrorPolicy(o.OnError); p != "" {
			opts.Articles.OnError = p
		}
	}
	if o.Workers > 0 {
		opts.Articles.Workers = o.Workers
	}
	if o.MetricsTextfile != "" {
		opts.Metrics.Textfile = o.MetricsTextfile
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// RunStages executes the selected stages and prints a summary to stdout.
func RunStages(ctx context.Context, opts *config.Options, stages build.Stages) error {
	runner := build.NewRunner().WithProgress(progress.New(os.Stderr, slog.Default()))

	var prom *metrics.PrometheusRecorder
	if opts.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		runner.WithRecorder(prom)
	}

	res, err := runner.Run(ctx, build.Request{Options: *opts, Stages: stages})

	if prom != nil {
		if werr := prom.WriteTextfile(opts.Metrics.Textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(opts.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if res != nil {
		printSummary(res)
	}
	return err
}

func printSummary(res *build.Result) {
	fmt.Printf("Run %s: %s in %s\n", res.RunID, res.Status, res.Duration.Round(time.Millisecond))
	if res.AssetsCopied > 0 {
		fmt.Printf("  assets copied: %d\n", res.AssetsCopied)
	}
	if res.MainPage != nil {
		fmt.Printf("  main page: %s (revision %s)\n", res.MainPage.Path, res.MainPage.RevisionID)
	}
	if res.ArticlesTotal > 0 {
		fmt.Printf("  articles: %d/%d processed, %d failed\n", res.ArticlesProcessed, res.ArticlesTotal, res.ArticlesFailed)
	}
	if res.RedirectPath != "" {
		fmt.Printf("  index redirect: %s\n", res.RedirectPath)
	}
}
