// Package trackertest provides an in-memory page for exercising a
// tracker.Tracker without a browser.
package trackertest

import (
	"sync"

	"github.com/mas-ajil/portfolio/internal/tracker"
)

// Element is a fake landmark that counts scroll requests.
type Element struct {
	id string

	mu      sync.Mutex
	scrolls int
}

func (e *Element) ID() string { return e.id }

func (e *Element) ScrollIntoView() {
	e.mu.Lock()
	e.scrolls++
	e.mu.Unlock()
}

// Scrolls returns how many times the element was scrolled into view.
func (e *Element) Scrolls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrolls
}

// Page is a fake Document and Observer in one.
type Page struct {
	mu          sync.Mutex
	elements    map[string]*Element
	observed    []string
	opts        tracker.Options
	fn          func([]tracker.Entry)
	observes    int
	disconnects int
}

// NewPage returns a page holding one landmark per id.
func NewPage(ids ...string) *Page {
	p := &Page{elements: make(map[string]*Element, len(ids))}
	for _, id := range ids {
		p.elements[id] = &Element{id: id}
	}
	return p
}

// ElementByID implements tracker.Document.
func (p *Page) ElementByID(id string) (tracker.Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Element returns the concrete fake for assertions, or nil.
func (p *Page) Element(id string) *Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elements[id]
}

// Observe implements tracker.Observer.
func (p *Page) Observe(elements []tracker.Element, opts tracker.Options, fn func([]tracker.Entry)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observed = p.observed[:0]
	for _, el := range elements {
		p.observed = append(p.observed, el.ID())
	}
	p.opts = opts
	p.fn = fn
	p.observes++
}

// Disconnect implements tracker.Observer.
func (p *Page) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fn = nil
	p.disconnects++
}

// Deliver pushes a visibility batch to the registered callback, if any.
// It reports whether a callback received it.
func (p *Page) Deliver(entries ...tracker.Entry) bool {
	p.mu.Lock()
	fn := p.fn
	p.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(entries)
	return true
}

// Observed returns the ids passed to the last Observe call.
func (p *Page) Observed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.observed...)
}

// Options returns the options passed to the last Observe call.
func (p *Page) Options() tracker.Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts
}

// Observes returns how many times Observe was called.
func (p *Page) Observes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.observes
}

// Disconnects returns how many times Disconnect was called.
func (p *Page) Disconnects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnects
}

// Visible builds an intersecting entry.
func Visible(id string, ratio float64) tracker.Entry {
	return tracker.Entry{ID: id, Intersecting: true, Ratio: ratio}
}

// Hidden builds a non-intersecting entry.
func Hidden(id string) tracker.Entry {
	return tracker.Entry{ID: id}
}
