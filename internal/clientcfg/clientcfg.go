// Package clientcfg is the settings document the server hands to the
// browser client: which landmarks to track and how, and the starting theme.
package clientcfg

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mas-ajil/portfolio/internal/theme"
	"github.com/mas-ajil/portfolio/internal/tracker"
)

// ElementID is the id of the <script type="application/json"> element
// carrying the config inside the page.
const ElementID = "tracker-config"

type Config struct {
	Landmarks []string        `json:"landmarks"`
	Initial   string          `json:"initial"`
	Options   tracker.Options `json:"options"`
	Theme     theme.Mode      `json:"theme"`
}

// Decode parses a config document. Missing fields take tracker and theme
// defaults.
func Decode(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("clientcfg: decode: %w", err)
	}
	if c.Theme != theme.Light && c.Theme != theme.Dark {
		c.Theme = theme.Default
	}
	return c, nil
}

// Encode serialises c.
func (c Config) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// Tracker builds the tracker.Config for this document.
func (c Config) Tracker(onChange func(prev, next string), logger *slog.Logger) tracker.Config {
	return tracker.Config{
		Landmarks: c.Landmarks,
		Initial:   c.Initial,
		Options:   c.Options,
		OnChange:  onChange,
		Logger:    logger,
	}
}
