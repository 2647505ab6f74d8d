package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if p.Profile.Name != "Azizil Putra" {
		t.Errorf("Profile.Name: got %q", p.Profile.Name)
	}

	want := []string{"home", "about", "skills", "projects", "experience", "contact"}
	got := p.NavIDs()
	if len(got) != len(want) {
		t.Fatalf("NavIDs: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NavIDs[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
	if p.Nav[5].Label != "Kontak" {
		t.Errorf("contact label: got %q, want %q", p.Nav[5].Label, "Kontak")
	}
	if len(p.Skills) != 7 || len(p.Projects) != 3 || len(p.Experience) != 2 {
		t.Errorf("counts: skills=%d projects=%d experience=%d", len(p.Skills), len(p.Projects), len(p.Experience))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no name", "nav: [{id: a, label: A}]", "profile.name"},
		{"no nav", "profile: {name: X}", "nav is empty"},
		{"empty id", "profile: {name: X}\nnav: [{label: A}]", "has no id"},
		{"duplicate id", "profile: {name: X}\nnav: [{id: a}, {id: a}]", "duplicate nav id"},
		{"skill range", "profile: {name: X}\nnav: [{id: a}]\nskills: [{name: Go, level: 120}]", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse: got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	data := "profile: {name: Someone}\nnav: [{id: home, label: Home}, {id: contact, label: Contact}]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Profile.Name != "Someone" || len(p.Nav) != 2 {
		t.Errorf("Load: got %+v", p)
	}
	if !p.HasSection("contact") || p.HasSection("skills") {
		t.Error("HasSection: wrong membership")
	}
	if got := p.Title("contact").Title; got != "Contact" {
		t.Errorf("Title fallback: got %q, want %q", got, "Contact")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load: want error for missing file")
	}
}

func TestSkill_Percent(t *testing.T) {
	for _, tt := range []struct{ level, want int }{{-5, 0}, {0, 0}, {72, 72}, {100, 100}, {140, 100}} {
		if got := (Skill{Level: tt.level}).Percent(); got != tt.want {
			t.Errorf("Percent(%d): got %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	html, err := Markdown("fokus pada **Blue Team**")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(string(html), "<strong>Blue Team</strong>") {
		t.Errorf("Markdown: got %q", html)
	}
}

func TestMarkdown_Sanitizes(t *testing.T) {
	html, err := Markdown("hi <script>alert(1)</script> [x](javascript:alert(1))")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	s := string(html)
	if strings.Contains(s, "<script") || strings.Contains(s, "javascript:") {
		t.Errorf("Markdown: unsanitized output %q", s)
	}
}

func TestRender(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	r, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(r.About), "<p>") {
		t.Errorf("About: got %q", r.About)
	}
	if len(r.Projects) != len(p.Projects) {
		t.Errorf("Projects: got %d, want %d", len(r.Projects), len(p.Projects))
	}
}
