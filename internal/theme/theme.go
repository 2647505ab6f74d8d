// Package theme holds the light/dark colour scheme as explicit state.
package theme

import (
	"fmt"
	"strings"
	"sync"
)

// Mode is one of the two colour schemes.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Default is the scheme a fresh page view starts with.
const Default = Dark

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("theme: unknown mode %q", s)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// IsDark reports whether m is the dark scheme.
func (m Mode) IsDark() bool { return m == Dark }

func (m Mode) String() string { return string(m) }

// Switch is the theme state of one page view.
type Switch struct {
	mu       sync.Mutex
	mode     Mode
	onChange func(Mode)
}

// NewSwitch starts at mode. An invalid mode falls back to Default.
func NewSwitch(mode Mode, onChange func(Mode)) *Switch {
	if mode != Light && mode != Dark {
		mode = Default
	}
	return &Switch{mode: mode, onChange: onChange}
}

// Current returns the active mode.
func (s *Switch) Current() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Toggle flips the mode and returns the new one.
func (s *Switch) Toggle() Mode {
	s.mu.Lock()
	s.mode = s.mode.Toggle()
	m := s.mode
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(m)
	}
	return m
}

// Set forces a mode. Setting the current mode is a no-op.
func (s *Switch) Set(m Mode) {
	s.mu.Lock()
	if m == s.mode || (m != Light && m != Dark) {
		s.mu.Unlock()
		return
	}
	s.mode = m
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(m)
	}
}
