package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// progressLogInterval is the minimum gap between progress log lines.
const progressLogInterval = 10 * time.Second

// progress reports resolved records either as a bar on a terminal or as throttled log lines.
type progress struct {
	log       *slog.Logger
	bar       *progressbar.ProgressBar
	sometimes rate.Sometimes
	total     int
	failures  int
}

func newProgress(log *slog.Logger, w io.Writer, total int) *progress {
	p := &progress{
		log:       log,
		sometimes: rate.Sometimes{First: 1, Interval: progressLogInterval},
		total:     total,
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Geocoding"),
			progressbar.OptionSetWriter(w),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	return p
}

// observe matches service.Observer.
func (p *progress) observe(idx int, _ models.GeocodeResult, outcome service.Outcome) {
	if outcome.Failed() {
		p.failures++
	}

	if p.bar != nil {
		if err := p.bar.Add(1); err != nil {
			p.log.Debug("Failed to update progress bar", "error", err)
		}
		return
	}

	done := idx + 1
	if done == p.total {
		p.report(done)
		return
	}
	p.sometimes.Do(func() { p.report(done) })
}

func (p *progress) report(done int) {
	p.log.Info("Geocoding progress", "done", done, "total", p.total, "failures", p.failures)
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
