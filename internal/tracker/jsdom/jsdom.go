//go:build js && wasm

// Package jsdom adapts the browser DOM, via syscall/js, to the tracker's
// Document and Observer interfaces.
package jsdom

import (
	"syscall/js"

	"github.com/mas-ajil/portfolio/internal/tracker"
)

// Document wraps window.document.
type Document struct {
	doc js.Value
}

// NewDocument returns the global document.
func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

// ElementByID implements tracker.Document.
func (d *Document) ElementByID(id string) (tracker.Element, bool) {
	el := d.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return Element{id: id, v: el}, true
}

// Element wraps a DOM element.
type Element struct {
	id string
	v  js.Value
}

func (e Element) ID() string { return e.id }

func (e Element) ScrollIntoView() {
	opts := js.Global().Get("Object").New()
	opts.Set("behavior", "smooth")
	opts.Set("block", "start")
	e.v.Call("scrollIntoView", opts)
}

// Observer wraps one IntersectionObserver at a time.
type Observer struct {
	obs js.Value
	cb  js.Func
}

// Observe implements tracker.Observer.
func (o *Observer) Observe(elements []tracker.Element, opts tracker.Options, fn func([]tracker.Entry)) {
	o.Disconnect()

	o.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		list := args[0]
		entries := make([]tracker.Entry, list.Length())
		for i := range entries {
			e := list.Index(i)
			entries[i] = tracker.Entry{
				ID:           e.Get("target").Get("id").String(),
				Intersecting: e.Get("isIntersecting").Bool(),
				Ratio:        e.Get("intersectionRatio").Float(),
			}
		}
		fn(entries)
		return nil
	})

	thresholds := make([]any, len(opts.Thresholds))
	for i, th := range opts.Thresholds {
		thresholds[i] = th
	}
	init := js.Global().Get("Object").New()
	init.Set("rootMargin", opts.RootMargin)
	init.Set("threshold", js.ValueOf(thresholds))

	o.obs = js.Global().Get("IntersectionObserver").New(o.cb, init)
	for _, el := range elements {
		if e, ok := el.(Element); ok {
			o.obs.Call("observe", e.v)
		}
	}
}

// Disconnect implements tracker.Observer.
func (o *Observer) Disconnect() {
	if o.obs.Truthy() {
		o.obs.Call("disconnect")
		o.obs = js.Undefined()
	}
	if o.cb.Truthy() {
		o.cb.Release()
		o.cb = js.Func{}
	}
}
