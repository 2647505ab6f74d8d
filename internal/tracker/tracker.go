// Package tracker keeps the navigation highlight in sync with the page
// section the visitor is looking at.
//
// A Tracker watches a fixed, ordered set of landmarks through an Observer
// and holds one value: the id of the active landmark. Visibility batches
// pick the most visible intersecting landmark; NavigateTo scrolls to a
// landmark and marks it active immediately. Every abnormal input degrades
// to a no-op.
package tracker

import (
	"log/slog"
	"sync"
)

// Landmarks are the page sections in navigation order.
var Landmarks = []string{"home", "about", "skills", "projects", "experience", "contact"}

// DefaultActive is the section highlighted before any visibility signal
// arrives. It is not the topmost landmark.
const DefaultActive = "about"

// Entry is one visibility crossing reported by an Observer.
type Entry struct {
	ID           string  `json:"id"`
	Intersecting bool    `json:"intersecting"`
	Ratio        float64 `json:"ratio"`
}

// Options configure the observation region.
type Options struct {
	RootMargin string    `json:"rootMargin"`
	Thresholds []float64 `json:"thresholds"`
}

// DefaultOptions watches the full viewport height and fires at 20%, 60%
// and 100% visibility.
func DefaultOptions() Options {
	return Options{
		RootMargin: "0% 0px 0% 0px",
		Thresholds: []float64{0.2, 0.6, 1},
	}
}

// Element is a landmark located in the host document.
type Element interface {
	ID() string
	// ScrollIntoView smoothly scrolls the element's top edge to the top of
	// the viewport. It must not block on the animation.
	ScrollIntoView()
}

// Document resolves landmarks by id.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// Observer is the host's viewport-intersection primitive.
type Observer interface {
	Observe(elements []Element, opts Options, fn func([]Entry))
	Disconnect()
}

// Config for creating a Tracker.
type Config struct {
	Landmarks []string
	Initial   string
	Options   Options
	// OnChange is called with the previous and new active id whenever the
	// active section changes. It runs outside the tracker's lock.
	OnChange func(prev, next string)
	Logger   *slog.Logger
}

func (c *Config) defaults() {
	if len(c.Landmarks) == 0 {
		c.Landmarks = Landmarks
	}
	if c.Initial == "" {
		c.Initial = DefaultActive
	}
	if len(c.Options.Thresholds) == 0 {
		c.Options.Thresholds = DefaultOptions().Thresholds
	}
	if c.Options.RootMargin == "" {
		c.Options.RootMargin = DefaultOptions().RootMargin
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Tracker holds the active section for one page view.
type Tracker struct {
	doc    Document
	obs    Observer
	cfg    Config
	logger *slog.Logger

	// lifecycle serialises Attach and Detach so Disconnect never runs
	// before the Observe it undoes has returned.
	lifecycle sync.Mutex

	mu       sync.Mutex
	active   string
	attached bool
}

// New creates a Tracker. Call Attach to start observing.
func New(doc Document, obs Observer, cfg Config) *Tracker {
	cfg.defaults()
	return &Tracker{
		doc:    doc,
		obs:    obs,
		cfg:    cfg,
		logger: cfg.Logger,
		active: cfg.Initial,
	}
}

// Attach locates the landmarks and registers one observation over all of
// them. With no landmarks on the page it does nothing.
func (t *Tracker) Attach() {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	t.mu.Lock()
	if t.attached {
		t.mu.Unlock()
		return
	}

	var els []Element
	for _, id := range t.cfg.Landmarks {
		if el, ok := t.doc.ElementByID(id); ok {
			els = append(els, el)
		}
	}
	if len(els) == 0 {
		t.mu.Unlock()
		t.logger.Debug("tracker: no landmarks found, not observing")
		return
	}
	t.attached = true
	t.mu.Unlock()

	t.obs.Observe(els, t.cfg.Options, t.update)
	t.logger.Debug("tracker: observing", "landmarks", len(els))
}

// Detach stops the observation. Safe to call any number of times. A later
// Attach observes again.
func (t *Tracker) Detach() {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	t.mu.Lock()
	if !t.attached {
		t.mu.Unlock()
		return
	}
	t.attached = false
	t.mu.Unlock()

	t.obs.Disconnect()
	t.logger.Debug("tracker: detached")
}

// Attached reports whether an observation is registered.
func (t *Tracker) Attached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attached
}

// Active returns the id of the highlighted section.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// NavigateTo scrolls to the landmark with the given id and marks it active
// without waiting for the scroll to finish. Unknown ids are ignored.
func (t *Tracker) NavigateTo(id string) {
	el, ok := t.doc.ElementByID(id)
	if !ok {
		t.logger.Debug("tracker: navigate to unknown landmark", "id", id)
		return
	}
	el.ScrollIntoView()
	t.set(id)
}

// update handles one visibility batch.
func (t *Tracker) update(entries []Entry) {
	if !t.Attached() {
		return
	}
	e, ok := MostVisible(entries)
	if !ok || e.ID == "" {
		return
	}
	t.set(e.ID)
}

func (t *Tracker) set(id string) {
	t.mu.Lock()
	prev := t.active
	t.active = id
	t.mu.Unlock()

	if prev != id && t.cfg.OnChange != nil {
		t.cfg.OnChange(prev, id)
	}
}

// MostVisible returns the intersecting entry with the highest ratio. Ties
// go to the entry that comes first in the batch. ok is false when nothing
// intersects.
func MostVisible(entries []Entry) (best Entry, ok bool) {
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		if !ok || e.Ratio > best.Ratio {
			best, ok = e, true
		}
	}
	return best, ok
}
