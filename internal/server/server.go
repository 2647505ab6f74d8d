// Package server serves the portfolio page with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mas-ajil/portfolio/internal/content"
	"github.com/mas-ajil/portfolio/internal/theme"
	"github.com/mas-ajil/portfolio/internal/tracker"
	"github.com/mas-ajil/portfolio/internal/wasmbuild"
)

// ErrUnknownSection is returned for section ids not in the navigation.
var ErrUnknownSection = errors.New("unknown section")

// TrackerSettings is what the browser tracker is told to watch.
type TrackerSettings struct {
	Landmarks []string
	Initial   string
	Options   tracker.Options
}

// Options configure a Server.
type Options struct {
	Theme   theme.Mode
	Tracker TrackerSettings
	// WasmDir holds tracker.wasm and wasm_exec.js. Without both files the
	// client tracker and the theme toggle are left out of the page;
	// anchors still scroll natively.
	WasmDir string
	Logger  *slog.Logger
	Now     func() time.Time
}

func (o *Options) defaults() {
	if o.Theme == "" {
		o.Theme = theme.Default
	}
	if len(o.Tracker.Landmarks) == 0 {
		o.Tracker.Landmarks = tracker.Landmarks
	}
	if o.Tracker.Initial == "" {
		o.Tracker.Initial = tracker.DefaultActive
	}
	if len(o.Tracker.Options.Thresholds) == 0 {
		o.Tracker.Options.Thresholds = tracker.DefaultOptions().Thresholds
	}
	if o.Tracker.Options.RootMargin == "" {
		o.Tracker.Options.RootMargin = tracker.DefaultOptions().RootMargin
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = currentTime
	}
}

// Server renders the portfolio.
type Server struct {
	site     *content.Portfolio
	rendered *content.Rendered
	opts     Options
	logger   *slog.Logger
	tmpl     *template.Template
	engine   *gin.Engine
	stats    *stats
	wasm     bool
}

// New parses templates, renders markdown once and registers the routes.
func New(site *content.Portfolio, opts Options) (*Server, error) {
	opts.defaults()

	rendered, err := site.Render()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		site:     site,
		rendered: rendered,
		opts:     opts,
		logger:   opts.Logger,
		tmpl:     tmpl,
		stats:    newStats(opts.Now),
		wasm:     wasmbuild.Present(opts.WasmDir),
	}
	if !s.wasm {
		s.logger.Warn("server: tracker client not found, serving page without scroll tracking or theme toggle",
			"wasm_dir", opts.WasmDir)
	}
	s.engine = s.routes()
	return s, nil
}

// WasmDir returns the directory the client is served from, or "" when the
// page is rendered without it.
func (s *Server) WasmDir() string {
	if !s.wasm {
		return ""
	}
	return s.opts.WasmDir
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger, newSalt(), s.stats))
	r.SetHTMLTemplate(s.tmpl)

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))
	if s.wasm {
		r.Static("/wasm", s.opts.WasmDir)
	}

	// Home page route
	r.GET("/", func(c *gin.Context) {
		s.stats.pageViews.Add(1)
		c.HTML(http.StatusOK, "index.html", s.pageData())
	})

	// Single section fragment, for HTMX swaps and the static export.
	r.GET("/sections/:id", func(c *gin.Context) {
		id := c.Param("id")
		if !s.site.HasSection(id) {
			c.String(http.StatusNotFound, "unknown section %q", id)
			return
		}
		c.HTML(http.StatusOK, "section", s.pageData().Section(id))
	})

	r.GET("/tracker.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.ClientConfig())
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.stats.snapshot())
	})

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server: listening", "addr", addr, "wasm", s.wasm)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("server: shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
