// Package progress reports the advance of the article pass to the operator.
package progress

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Reporter is the narrow capability the pipeline needs from a progress display.
// Callers never invoke a Reporter concurrently.
type Reporter interface {
	Start(total, initial int)
	Update(count int)
	Stop()
	Error(err error)
}

// New returns a terminal bar when out is a TTY and a log-based reporter otherwise.
func New(out *os.File, logger *slog.Logger) Reporter {
	if out != nil && term.IsTerminal(int(out.Fd())) {
		return NewBar(out)
	}
	return NewLogReporter(logger)
}

// Noop discards all progress.
type Noop struct{}

func (Noop) Start(int, int) {}
func (Noop) Update(int)     {}
func (Noop) Stop()          {}
func (Noop) Error(error)    {}

var _ Reporter = Noop{}

// writeLine writes s and ignores the error; progress output is best effort.
func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}
