package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Typographer),
	)
	policy = bluemonday.UGCPolicy()
)

// Markdown renders src to sanitized HTML safe for templates.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("content: render markdown: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// Rendered holds the markdown fields of a Portfolio converted to HTML.
type Rendered struct {
	Summary  template.HTML
	About    template.HTML
	Projects []template.HTML
}

// Render converts every markdown field once so handlers can reuse it.
func (p *Portfolio) Render() (*Rendered, error) {
	var (
		r   Rendered
		err error
	)
	if r.Summary, err = Markdown(p.Profile.Summary); err != nil {
		return nil, err
	}
	if r.About, err = Markdown(p.About); err != nil {
		return nil, err
	}
	r.Projects = make([]template.HTML, len(p.Projects))
	for i, pr := range p.Projects {
		if r.Projects[i], err = Markdown(pr.Description); err != nil {
			return nil, fmt.Errorf("project %q: %w", pr.Title, err)
		}
	}
	return &r, nil
}
