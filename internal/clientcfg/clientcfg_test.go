package clientcfg

import (
	"testing"

	"github.com/mas-ajil/portfolio/internal/theme"
	"github.com/mas-ajil/portfolio/internal/tracker"
)

func TestEncodeDecode(t *testing.T) {
	in := Config{
		Landmarks: tracker.Landmarks,
		Initial:   "about",
		Options:   tracker.DefaultOptions(),
		Theme:     theme.Light,
	}
	data, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Initial != "about" || out.Theme != theme.Light || len(out.Landmarks) != 6 {
		t.Errorf("Decode: got %+v", out)
	}
	if out.Options.RootMargin != "0% 0px 0% 0px" || len(out.Options.Thresholds) != 3 {
		t.Errorf("Options: got %+v", out.Options)
	}
}

func TestDecode_DefaultsTheme(t *testing.T) {
	out, err := Decode([]byte(`{"initial":"home"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Theme != theme.Dark {
		t.Errorf("Theme: got %q, want %q", out.Theme, theme.Dark)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte(`{`)); err == nil {
		t.Error("Decode: want error")
	}
}

func TestTrackerConfig(t *testing.T) {
	c := Config{Initial: "home"}
	called := false
	tc := c.Tracker(func(string, string) { called = true }, nil)
	if tc.Initial != "home" || tc.OnChange == nil {
		t.Fatalf("Tracker: got %+v", tc)
	}
	tc.OnChange("a", "b")
	if !called {
		t.Error("OnChange not forwarded")
	}
}
