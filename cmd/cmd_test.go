package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mas-ajil/portfolio/internal/config"
	"github.com/mas-ajil/portfolio/internal/wasmbuild"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "portfolio dev") {
		t.Errorf("version output: %q", out)
	}
}

func TestBuild(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")

	client := filepath.Join(dir, "web")
	if err := os.MkdirAll(client, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{wasmbuild.WasmFile, wasmbuild.ExecFile} {
		if err := os.WriteFile(filepath.Join(client, name), []byte("\x00asm"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PORTFOLIO_WASM_DIR", client)
	t.Setenv("PORTFOLIO_WASM_BUILD", "false")

	stdout, err := run(t, "build", "--config", filepath.Join(dir, "missing.yml"), "--out", out)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(stdout, "Wrote") {
		t.Errorf("build output: %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Errorf("index.html: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "sections", "contact.html")); err != nil {
		t.Errorf("sections/contact.html: %v", err)
	}
	for _, name := range []string{wasmbuild.WasmFile, wasmbuild.ExecFile} {
		if _, err := os.Stat(filepath.Join(out, "wasm", name)); err != nil {
			t.Errorf("wasm/%s: %v", name, err)
		}
	}
	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `src="wasm/wasm_exec.js"`) {
		t.Error("exported page does not load the tracker client")
	}
}

func TestBuild_WithoutClient(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")
	t.Setenv("PORTFOLIO_WASM_DIR", filepath.Join(dir, "missing"))
	t.Setenv("PORTFOLIO_WASM_BUILD", "false")

	if _, err := run(t, "build", "--config", filepath.Join(dir, "missing.yml"), "--out", out); err != nil {
		t.Fatalf("build: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(index), `id="theme-toggle"`) {
		t.Error("theme toggle exported without a client")
	}
	if _, err := os.Stat(filepath.Join(out, "wasm")); !os.IsNotExist(err) {
		t.Error("wasm dir exported without a client")
	}
}

func TestConfigInit(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "portfolio.yml")

	if _, err := run(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tracker.Initial != "about" || cfg.WasmDir != "web" {
		t.Errorf("written config: got %+v", cfg)
	}

	_, err = run(t, "config", "init", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init: got %v, want already exists", err)
	}
}

func TestBuild_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yml")
	if err := os.WriteFile(path, []byte("theme: sepia\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "build", "--config", path, "--out", filepath.Join(dir, "dist"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("build: got %v, want invalid config error", err)
	}
}
