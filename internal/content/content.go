// Package content holds the static portfolio data rendered by the site.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultYAML []byte

type Profile struct {
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	Badge        string `yaml:"badge"`
	Location     string `yaml:"location"`
	Availability string `yaml:"availability"`
	Summary      string `yaml:"summary"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	LinkedIn     string `yaml:"linkedin"`
	GitHub       string `yaml:"github"`
	CVURL        string `yaml:"cv_url"`
}

// NavItem is one entry of the header navigation. ID names the section it
// scrolls to.
type NavItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type SectionTitle struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Percent clamps Level to 0..100 for bar widths.
func (s Skill) Percent() int {
	switch {
	case s.Level < 0:
		return 0
	case s.Level > 100:
		return 100
	}
	return s.Level
}

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Period      string   `yaml:"period"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	Links       []Link   `yaml:"links"`
}

type Experience struct {
	Role    string   `yaml:"role"`
	Company string   `yaml:"company"`
	Period  string   `yaml:"period"`
	Points  []string `yaml:"points"`
}

type Certificate struct {
	Name string `yaml:"name"`
	Year string `yaml:"year"`
}

// ContactPlaceholder prefills the inert contact form.
type ContactPlaceholder struct {
	Subject string `yaml:"subject"`
	Message string `yaml:"message"`
	Note    string `yaml:"note"`
}

type Footer struct {
	BuiltWith string `yaml:"built_with"`
	BackToTop string `yaml:"back_to_top"`
}

// Portfolio is the whole page's data.
type Portfolio struct {
	Profile      Profile                 `yaml:"profile"`
	Nav          []NavItem               `yaml:"nav"`
	Sections     map[string]SectionTitle `yaml:"sections"`
	HeroTiles    []string                `yaml:"hero_tiles"`
	About        string                  `yaml:"about"`
	Stack        []string                `yaml:"stack"`
	Skills       []Skill                 `yaml:"skills"`
	Projects     []Project               `yaml:"projects"`
	Experience   []Experience            `yaml:"experience"`
	Certificates []Certificate           `yaml:"certificates"`
	Contact      ContactPlaceholder      `yaml:"contact"`
	Footer       Footer                  `yaml:"footer"`
}

// Default returns the built-in portfolio.
func Default() (*Portfolio, error) {
	return Parse(defaultYAML)
}

// Load reads a portfolio from a YAML file. An empty path returns Default.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML portfolio.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the page relies on.
func (p *Portfolio) Validate() error {
	if p.Profile.Name == "" {
		return fmt.Errorf("content: profile.name is required")
	}
	if len(p.Nav) == 0 {
		return fmt.Errorf("content: nav is empty")
	}
	seen := make(map[string]bool, len(p.Nav))
	for i, it := range p.Nav {
		if it.ID == "" {
			return fmt.Errorf("content: nav[%d] has no id", i)
		}
		if seen[it.ID] {
			return fmt.Errorf("content: duplicate nav id %q", it.ID)
		}
		seen[it.ID] = true
	}
	for _, s := range p.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("content: skill %q level %d out of range 0-100", s.Name, s.Level)
		}
	}
	return nil
}

// NavIDs returns the navigation ids in order.
func (p *Portfolio) NavIDs() []string {
	ids := make([]string, len(p.Nav))
	for i, it := range p.Nav {
		ids[i] = it.ID
	}
	return ids
}

// HasSection reports whether id is a navigation target.
func (p *Portfolio) HasSection(id string) bool {
	for _, it := range p.Nav {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Title returns the heading of a section, falling back to its nav label.
func (p *Portfolio) Title(id string) SectionTitle {
	if t, ok := p.Sections[id]; ok {
		return t
	}
	for _, it := range p.Nav {
		if it.ID == id {
			return SectionTitle{Title: it.Label}
		}
	}
	return SectionTitle{}
}
