package browser

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mas-ajil/portfolio/internal/tracker"
)

//go:embed observer.js
var observerJS string

const bindingName = "__portfolio_sections"

const disconnectJS = `(binding) => {
	const obs = window["__" + binding];
	if (obs) {
		obs.disconnect();
		delete window["__" + binding];
	}
}`

const scrollJS = `function () { this.scrollIntoView({ behavior: "smooth", block: "start" }) }`

// Page is a browser tab acting as both tracker.Document and
// tracker.Observer: landmarks are real DOM elements and visibility comes
// from an injected IntersectionObserver reporting through a CDP binding.
type Page struct {
	page   *rod.Page
	ctx    context.Context
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	binding bool
}

func newPage(ctx context.Context, p *rod.Page, logger *slog.Logger) *Page {
	return &Page{page: p, ctx: ctx, logger: logger}
}

// ElementByID implements tracker.Document.
func (p *Page) ElementByID(id string) (tracker.Element, bool) {
	has, el, err := p.page.Context(p.ctx).Has(fmt.Sprintf("[id=%q]", id))
	if err != nil {
		p.logger.Debug("browser: lookup landmark", "id", id, "error", err)
		return nil, false
	}
	if !has {
		return nil, false
	}
	return &element{id: id, el: el, logger: p.logger}, true
}

// Observe implements tracker.Observer.
func (p *Page) Observe(elements []tracker.Element, opts tracker.Options, fn func([]tracker.Entry)) {
	ids := make([]string, len(elements))
	for i, el := range elements {
		ids[i] = el.ID()
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancel = cancel
	needBinding := !p.binding
	p.binding = true
	p.mu.Unlock()

	if needBinding {
		if err := (proto.RuntimeAddBinding{Name: bindingName}).Call(p.page); err != nil {
			p.logger.Warn("browser: add binding failed", "error", err)
		}
	}

	wait := p.page.Context(ctx).EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != bindingName {
			return
		}
		var entries []tracker.Entry
		if err := json.Unmarshal([]byte(e.Payload), &entries); err != nil {
			p.logger.Warn("browser: parse visibility batch", "error", err)
			return
		}
		fn(entries)
	})
	go wait()

	res, err := p.page.Context(ctx).Eval(observerJS, bindingName, ids, opts.RootMargin, opts.Thresholds)
	if err != nil {
		p.logger.Error("browser: inject observer", "error", err)
		return
	}
	p.logger.Debug("browser: observer injected", "observed", res.Value.Int())
}

// Disconnect implements tracker.Observer.
func (p *Page) Disconnect() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	if _, err := p.page.Context(p.ctx).Eval(disconnectJS, bindingName); err != nil {
		p.logger.Warn("browser: disconnect observer", "error", err)
	}
	cancel()
}

// ScrollTop jumps to the top of the document without animation.
func (p *Page) ScrollTop() error {
	_, err := p.page.Context(p.ctx).Eval(`() => window.scrollTo({ top: 0, behavior: "instant" })`)
	return err
}

// Screenshot captures the viewport as PNG.
func (p *Page) Screenshot() ([]byte, error) {
	return p.page.Context(p.ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// Close closes the tab.
func (p *Page) Close() error {
	p.Disconnect()
	return p.page.Close()
}

type element struct {
	id     string
	el     *rod.Element
	logger *slog.Logger
}

func (e *element) ID() string { return e.id }

func (e *element) ScrollIntoView() {
	if _, err := e.el.Eval(scrollJS); err != nil {
		e.logger.Debug("browser: scroll into view", "id", e.id, "error", err)
	}
}
