package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/mas-ajil/portfolio/internal/tracker"
)

// AuditConfig drives one audit run.
type AuditConfig struct {
	URL     string
	Width   int
	Height  int
	Browser Config
	Tracker tracker.Config
	// Settle is how long to wait after each click before reading the
	// active section again. Default: 1.5s.
	Settle time.Duration
	// ShotsDir, when set, receives one thumbnail per landmark.
	ShotsDir   string
	ThumbWidth uint
	Logger     *slog.Logger
}

func (c *AuditConfig) defaults() {
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 800
	}
	if c.Settle <= 0 {
		c.Settle = 1500 * time.Millisecond
	}
	if c.ThumbWidth == 0 {
		c.ThumbWidth = 480
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if len(c.Tracker.Landmarks) == 0 {
		c.Tracker.Landmarks = tracker.Landmarks
	}
	if c.Tracker.Logger == nil {
		c.Tracker.Logger = c.Logger
	}
	c.Browser.Logger = c.Logger
}

// Step is the outcome of navigating to one landmark.
type Step struct {
	Target      string
	AfterClick  string
	AfterSettle string
	Shot        string
}

// Report summarises an audit.
type Report struct {
	URL      string
	Initial  string
	Attached bool
	Steps    []Step
}

// Failures returns steps where the click did not highlight the target.
func (r *Report) Failures() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.AfterClick != s.Target {
			out = append(out, s)
		}
	}
	return out
}

// Drift returns steps where visibility moved the highlight away from the
// clicked target once scrolling settled. Short last sections commonly
// drift to their neighbour.
func (r *Report) Drift() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.AfterSettle != s.Target {
			out = append(out, s)
		}
	}
	return out
}

// Write prints the report as a table.
func (r *Report) Write(w io.Writer) error {
	fmt.Fprintf(w, "url: %s\ninitial: %s\nobserving: %v\n\n", r.URL, r.Initial, r.Attached)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tAFTER CLICK\tAFTER SETTLE\tSHOT")
	for _, s := range r.Steps {
		shot := s.Shot
		if shot == "" {
			shot = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Target, s.AfterClick, s.AfterSettle, shot)
	}
	return tw.Flush()
}

// Audit loads the page in Chrome, attaches a tracker and navigates to
// every landmark in order, recording the highlight after each click and
// after the scroll settles.
func Audit(ctx context.Context, cfg AuditConfig) (*Report, error) {
	cfg.defaults()
	log := cfg.Logger

	if cfg.ShotsDir != "" {
		if err := os.MkdirAll(cfg.ShotsDir, 0o755); err != nil {
			return nil, fmt.Errorf("browser: create shots dir: %w", err)
		}
	}

	b, err := Launch(ctx, cfg.Browser)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	page, err := b.Open(ctx, cfg.URL, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.ScrollTop(); err != nil {
		log.Warn("browser: scroll to top", "error", err)
	}

	tr := tracker.New(page, page, cfg.Tracker)
	report := &Report{URL: cfg.URL, Initial: tr.Active()}
	tr.Attach()
	defer tr.Detach()
	report.Attached = tr.Attached()

	for _, id := range cfg.Tracker.Landmarks {
		step := Step{Target: id}
		tr.NavigateTo(id)
		step.AfterClick = tr.Active()

		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-time.After(cfg.Settle):
		}
		step.AfterSettle = tr.Active()

		if cfg.ShotsDir != "" {
			shot, err := page.Screenshot()
			if err != nil {
				log.Warn("browser: screenshot", "section", id, "error", err)
			} else {
				path := filepath.Join(cfg.ShotsDir, id+".png")
				if err := writeThumbnail(path, shot, cfg.ThumbWidth); err != nil {
					log.Warn("browser: thumbnail", "section", id, "error", err)
				} else {
					step.Shot = path
				}
			}
		}

		log.Debug("browser: audit step", "target", id, "after_click", step.AfterClick, "after_settle", step.AfterSettle)
		report.Steps = append(report.Steps, step)
	}

	return report, nil
}
