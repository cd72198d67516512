package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyRevision   = "revision"
	KeyCount      = "count"
	KeyTotal      = "total"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyPolicy     = "policy"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Revision(id string) slog.Attr    { return slog.String(KeyRevision, id) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Total(n int) slog.Attr           { return slog.Int(KeyTotal, n) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Since reports the elapsed time since start in milliseconds.
func Since(start time.Time) slog.Attr {
	return DurationMS(float64(time.Since(start).Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
