// Package browser drives a real Chrome through Rod so the section tracker
// can be exercised against the rendered page.
package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config configures how Chrome is obtained.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Bin overrides the Chrome binary. Empty = launcher.LookPath.
	Bin string

	// Headful shows the browser window.
	Headful bool

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Browser is a connected Chrome.
type Browser struct {
	cfg     Config
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// Launch starts Chrome (or connects to RemoteURL).
func Launch(ctx context.Context, cfg Config) (*Browser, error) {
	cfg.defaults()
	log := cfg.Logger

	var (
		wsURL string
		lnch  *launcher.Launcher
	)
	if cfg.RemoteURL != "" {
		wsURL = cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		bin := cfg.Bin
		if bin == "" {
			bin, _ = launcher.LookPath()
		}
		lnch = launcher.New().Context(ctx).Headless(!cfg.Headful)
		if bin != "" {
			lnch = lnch.Bin(bin)
		}
		u, err := lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		log.Info("browser: launched local chrome", "url", wsURL, "headful", cfg.Headful)
	}

	b := rod.New().Context(ctx).ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if lnch != nil {
			lnch.Kill()
		}
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	return &Browser{cfg: cfg, browser: b, lnch: lnch}, nil
}

// Open navigates a new tab to pageURL with the given viewport and waits for
// the load event.
func (b *Browser) Open(ctx context.Context, pageURL string, width, height int) (*Page, error) {
	p, err := b.browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		p.Close()
		return nil, fmt.Errorf("browser: set viewport: %w", err)
	}

	if err := p.Context(ctx).Navigate(pageURL); err != nil {
		p.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := p.Context(ctx).WaitLoad(); err != nil {
		b.cfg.Logger.Warn("browser: wait load", "url", pageURL, "error", err)
	}

	return newPage(ctx, p, b.cfg.Logger), nil
}

// Close shuts the browser down and cleans up a locally launched Chrome.
func (b *Browser) Close() error {
	err := b.browser.Close()
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("browser: close: %w", err)
	}
	return nil
}
