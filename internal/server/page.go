package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/mas-ajil/portfolio/internal/clientcfg"
	"github.com/mas-ajil/portfolio/internal/content"
	"github.com/mas-ajil/portfolio/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData is everything the page templates read.
type PageData struct {
	*content.Portfolio
	HTML         *content.Rendered
	Theme        theme.Mode
	Active       string
	Year         int
	Wasm         bool
	ClientConfig clientcfg.Config
}

// SectionView pairs one section id with the page data.
type SectionView struct {
	ID    string
	Title content.SectionTitle
	Page  *PageData
}

// Section is called from templates to render one landmark.
func (p *PageData) Section(id string) SectionView {
	return SectionView{ID: id, Title: p.Title(id), Page: p}
}

// IsActive reports whether id is the initially highlighted section.
func (p *PageData) IsActive(id string) bool { return p.Active == id }

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("server: parse templates: %w", err)
	}
	return tmpl, nil
}

func (s *Server) pageData() *PageData {
	return &PageData{
		Portfolio:    s.site,
		HTML:         s.rendered,
		Theme:        s.opts.Theme,
		Active:       s.opts.Tracker.Initial,
		Year:         s.opts.Now().Year(),
		Wasm:         s.wasm,
		ClientConfig: s.ClientConfig(),
	}
}

// ClientConfig is the tracker document embedded in the page and served at
// /tracker.json.
func (s *Server) ClientConfig() clientcfg.Config {
	return clientcfg.Config{
		Landmarks: s.opts.Tracker.Landmarks,
		Initial:   s.opts.Tracker.Initial,
		Options:   s.opts.Tracker.Options,
		Theme:     s.opts.Theme,
	}
}

// RenderPage writes the full page.
func (s *Server) RenderPage(w io.Writer) error {
	return s.tmpl.ExecuteTemplate(w, "index.html", s.pageData())
}

// RenderSection writes one section fragment. Unknown ids are an error.
func (s *Server) RenderSection(w io.Writer, id string) error {
	if !s.site.HasSection(id) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return s.tmpl.ExecuteTemplate(w, "section", s.pageData().Section(id))
}

// StaticFS exposes the embedded assets for the static exporter.
func StaticFS() embed.FS { return staticFS }

func currentTime() time.Time { return time.Now() }
