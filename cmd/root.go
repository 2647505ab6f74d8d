package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mas-ajil/portfolio/internal/config"
	"github.com/mas-ajil/portfolio/internal/content"
	"github.com/mas-ajil/portfolio/internal/server"
	"github.com/mas-ajil/portfolio/internal/theme"
	"github.com/mas-ajil/portfolio/internal/wasmbuild"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Single-page personal portfolio",
	Long: `Serves a single-page portfolio with scroll-driven navigation
highlighting and a light/dark theme toggle. It can also export the page
as static files and audit the section tracker in a headless browser.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads and validates config and installs the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := cfg.Logger(os.Stderr, verbose)
	slog.SetDefault(logger)
	gin.SetMode(cfg.Mode)
	return cfg, logger, nil
}

// newServer builds the page server from config. With wasm_build set, a
// missing client is compiled first; failing that the page is served
// without it.
func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*server.Server, *content.Portfolio, error) {
	if cfg.WasmBuild && cfg.WasmDir != "" {
		if _, err := wasmbuild.Ensure(ctx, wasmbuild.Options{Dir: cfg.WasmDir, Logger: logger}); err != nil {
			logger.Warn("tracker client build failed", "wasm_dir", cfg.WasmDir, "error", err)
		}
	}

	site, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, nil, err
	}
	mode, err := theme.Parse(cfg.Theme)
	if err != nil {
		return nil, nil, err
	}
	srv, err := server.New(site, server.Options{
		Theme: mode,
		Tracker: server.TrackerSettings{
			Landmarks: cfg.Tracker.Landmarks,
			Initial:   cfg.Tracker.Initial,
			Options:   cfg.Tracker.Options(),
		},
		WasmDir: cfg.WasmDir,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return srv, site, nil
}
