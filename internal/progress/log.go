package progress

import "log/slog"

// milestones is how many evenly spaced progress lines are logged over a full pass.
const milestones = 10

// LogReporter reports progress as structured log lines, for non-interactive output.
type LogReporter struct {
	logger *slog.Logger
	total  int
	next   int
}

// NewLogReporter logs through logger, or the default logger when nil.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Start(total, initial int) {
	r.total = total
	r.next = 1
	r.logger.Info("Processing articles", "total", total, "count", initial)
}

func (r *LogReporter) Update(count int) {
	if r.total <= 0 || r.next > milestones {
		return
	}
	if count*milestones < r.next*r.total {
		return
	}
	for r.next <= milestones && count*milestones >= r.next*r.total {
		r.next++
	}
	r.logger.Info("Article progress", "count", count, "total", r.total, "percent", count*100/r.total)
}

func (r *LogReporter) Stop() {
	r.logger.Info("Article processing finished", "total", r.total)
}

func (r *LogReporter) Error(err error) {
	r.logger.Error("Operation failed", "error", err)
}
