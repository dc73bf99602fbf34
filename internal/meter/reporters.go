package meter

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// BarReporter feeds samples into an indeterminate progress bar.
type BarReporter struct {
	bar *progressbar.ProgressBar
}

// NewBarReporter creates a spinner-style bar on w counting unit/s.
func NewBarReporter(w io.Writer, description, unit string) *BarReporter {
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)
	return &BarReporter{bar: bar}
}

// Report advances the bar by the sample's delta.
func (b *BarReporter) Report(s Sample) {
	_ = b.bar.Add64(int64(s.Delta))
}

// Close finishes the bar's line.
func (b *BarReporter) Close() error {
	return b.bar.Close()
}

// LogReporter writes one log line per sample.
type LogReporter struct {
	logger zerolog.Logger
	msg    string
}

// NewLogReporter logs samples at info level with msg.
func NewLogReporter(logger zerolog.Logger, msg string) *LogReporter {
	return &LogReporter{logger: logger, msg: msg}
}

// Report logs the running total, the delta and the per-second rate.
func (l *LogReporter) Report(s Sample) {
	l.logger.Info().
		Uint64("total", s.Total).
		Uint64("delta", s.Delta).
		Float64("per_sec", s.Rate()).
		Msg(l.msg)
}
