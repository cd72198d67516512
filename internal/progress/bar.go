package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

const barWidth = 40

// Bar draws a single-line progress bar, redrawn in place with a carriage return.
type Bar struct {
	out   io.Writer
	model progress.Model
	total int
	count int
}

// NewBar creates a bar that renders to out.
func NewBar(out io.Writer) *Bar {
	return &Bar{
		out:   out,
		model: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
	}
}

func (b *Bar) Start(total, initial int) {
	b.total = total
	b.Update(initial)
}

func (b *Bar) Update(count int) {
	b.count = count
	writeLine(b.out, "\r"+b.render())
}

func (b *Bar) Stop() {
	writeLine(b.out, "\n")
}

func (b *Bar) Error(err error) {
	writeLine(b.out, fmt.Sprintf("\r\x1b[2KError: %v\n", err))
	if b.total > 0 {
		writeLine(b.out, "\r"+b.render())
	}
}

func (b *Bar) render() string {
	return fmt.Sprintf("%s %d/%d", b.model.ViewAs(fraction(b.count, b.total)), b.count, b.total)
}

func fraction(count, total int) float64 {
	if total <= 0 {
		return 1
	}
	f := float64(count) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}
