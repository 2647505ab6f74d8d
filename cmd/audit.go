package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mas-ajil/portfolio/internal/browser"
	"github.com/mas-ajil/portfolio/internal/tracker"
)

var (
	auditURL     string
	auditRemote  string
	auditShots   string
	auditWidth   int
	auditHeight  int
	auditSettle  time.Duration
	auditStrict  bool
	auditHeadful bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Walk every section in headless Chrome and report the nav highlight",
	Long: `Loads the page in Chrome, attaches the section tracker to a real
IntersectionObserver and navigates to every landmark in order. For each one
it reports the highlighted section right after the click and after the
smooth scroll settles. Optionally saves a thumbnail per section.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		report, err := browser.Audit(cmd.Context(), browser.AuditConfig{
			URL:    auditURL,
			Width:  auditWidth,
			Height: auditHeight,
			Browser: browser.Config{
				RemoteURL: auditRemote,
				Headful:   auditHeadful,
			},
			Tracker: tracker.Config{
				Landmarks: cfg.Tracker.Landmarks,
				Initial:   cfg.Tracker.Initial,
				Options:   cfg.Tracker.Options(),
			},
			Settle:   auditSettle,
			ShotsDir: auditShots,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		if err := report.Write(cmd.OutOrStdout()); err != nil {
			return err
		}

		if f := report.Failures(); len(f) > 0 {
			return fmt.Errorf("%d section(s) not highlighted on click", len(f))
		}
		if d := report.Drift(); auditStrict && len(d) > 0 {
			return fmt.Errorf("%d section(s) drifted after scrolling", len(d))
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditURL, "url", "http://localhost:8080/", "page to audit")
	auditCmd.Flags().StringVar(&auditRemote, "remote", "", "websocket URL of a running Chrome")
	auditCmd.Flags().StringVar(&auditShots, "shots", "", "directory for per-section thumbnails")
	auditCmd.Flags().IntVar(&auditWidth, "width", 1280, "viewport width")
	auditCmd.Flags().IntVar(&auditHeight, "height", 800, "viewport height")
	auditCmd.Flags().DurationVar(&auditSettle, "settle", 1500*time.Millisecond, "wait after each click")
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "fail when the highlight drifts after scrolling")
	auditCmd.Flags().BoolVar(&auditHeadful, "headful", false, "show the browser window")
	rootCmd.AddCommand(auditCmd)
}
