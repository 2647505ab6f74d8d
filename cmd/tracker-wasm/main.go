//go:build js && wasm

// Command tracker-wasm is the in-page client: it highlights the navigation
// entry of the section in view and drives the theme toggle. Build it with
// "portfolio wasm".
package main

import (
	"log/slog"
	"strings"
	"syscall/js"

	"github.com/mas-ajil/portfolio/internal/clientcfg"
	"github.com/mas-ajil/portfolio/internal/theme"
	"github.com/mas-ajil/portfolio/internal/tracker"
	"github.com/mas-ajil/portfolio/internal/tracker/jsdom"
)

func main() {
	doc := js.Global().Get("document")
	logger := slog.Default()

	cfg, err := readConfig(doc)
	if err != nil {
		logger.Warn("tracker: bad config, using defaults", "error", err)
	}

	root := doc.Get("documentElement")
	sw := theme.NewSwitch(cfg.Theme, func(m theme.Mode) {
		applyTheme(root, m)
	})
	applyTheme(root, sw.Current())

	tr := tracker.New(jsdom.NewDocument(), &jsdom.Observer{}, cfg.Tracker(func(_, next string) {
		highlight(doc, next)
	}, logger))
	highlight(doc, tr.Active())

	var funcs []js.Func
	on := func(target js.Value, event string, fn func(this js.Value, args []js.Value) any) {
		f := js.FuncOf(fn)
		funcs = append(funcs, f)
		target.Call("addEventListener", event, f)
	}

	// In-page anchors, nav entries included, go through NavigateTo.
	on(doc, "click", func(_ js.Value, args []js.Value) any {
		a := args[0].Get("target").Call("closest", `a[href^="#"]`)
		if a.IsNull() {
			return nil
		}
		id := strings.TrimPrefix(a.Call("getAttribute", "href").String(), "#")
		if _, ok := jsdom.NewDocument().ElementByID(id); !ok {
			return nil
		}
		args[0].Call("preventDefault")
		tr.NavigateTo(id)
		return nil
	})

	if btn := doc.Call("getElementById", "theme-toggle"); !btn.IsNull() {
		on(btn, "click", func(js.Value, []js.Value) any {
			sw.Toggle()
			return nil
		})
	}

	// Follow OS colour scheme changes made while the page is open.
	if mm := js.Global().Get("matchMedia"); mm.Truthy() {
		on(mm.Invoke(prefersDark), "change", func(_ js.Value, args []js.Value) any {
			if args[0].Get("matches").Bool() {
				sw.Set(theme.Dark)
			} else {
				sw.Set(theme.Light)
			}
			return nil
		})
	}

	// A page entering the back/forward cache is frozen, not unloaded: stop
	// observing and resume on pageshow. Only a real unload ends the program.
	done := make(chan struct{})
	on(js.Global(), "pagehide", func(_ js.Value, args []js.Value) any {
		tr.Detach()
		if !args[0].Get("persisted").Bool() {
			close(done)
		}
		return nil
	})
	on(js.Global(), "pageshow", func(_ js.Value, args []js.Value) any {
		if args[0].Get("persisted").Bool() {
			tr.Attach()
			highlight(doc, tr.Active())
		}
		return nil
	})

	tr.Attach()
	<-done

	for _, f := range funcs {
		f.Release()
	}
}

const prefersDark = "(prefers-color-scheme: dark)"

func readConfig(doc js.Value) (clientcfg.Config, error) {
	el := doc.Call("getElementById", clientcfg.ElementID)
	if el.IsNull() {
		return clientcfg.Config{Theme: theme.Default}, nil
	}
	cfg, err := clientcfg.Decode([]byte(el.Get("textContent").String()))
	if err != nil {
		return clientcfg.Config{Theme: theme.Default}, err
	}
	return cfg, nil
}

func applyTheme(root js.Value, m theme.Mode) {
	root.Get("classList").Call("toggle", "dark", m.IsDark())
	root.Get("dataset").Set("theme", m.String())
}

// highlight marks the nav entry for id and clears the others.
func highlight(doc js.Value, id string) {
	links := doc.Call("querySelectorAll", "[data-nav]")
	for i := 0; i < links.Length(); i++ {
		a := links.Index(i)
		active := a.Get("dataset").Get("nav").String() == id
		a.Get("classList").Call("toggle", "nav-active", active)
		if active {
			a.Call("setAttribute", "aria-current", "true")
		} else {
			a.Call("removeAttribute", "aria-current")
		}
	}
}
