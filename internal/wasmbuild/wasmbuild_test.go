package wasmbuild

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPresent(t *testing.T) {
	dir := t.TempDir()
	if Present(dir) {
		t.Fatal("empty dir: want not present")
	}
	touch(t, filepath.Join(dir, WasmFile))
	if Present(dir) {
		t.Fatal("wasm only: want not present")
	}
	touch(t, filepath.Join(dir, ExecFile))
	if !Present(dir) {
		t.Fatal("both files: want present")
	}
	if Present("") {
		t.Error("empty path: want not present")
	}
}

func TestFindExec(t *testing.T) {
	tests := []struct {
		name string
		at   string
	}{
		{"go1.24 layout", "lib/wasm"},
		{"older layout", "misc/wasm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			want := filepath.Join(root, filepath.FromSlash(tt.at), ExecFile)
			touch(t, want)
			got, err := findExec(root)
			if err != nil {
				t.Fatalf("findExec: %v", err)
			}
			if got != want {
				t.Errorf("findExec: got %s, want %s", got, want)
			}
		})
	}

	if _, err := findExec(t.TempDir()); err == nil {
		t.Error("findExec on empty root: want error")
	}
}

func TestBuild_NoToolchain(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web")
	err := Build(context.Background(), Options{Dir: dir, GoBin: "no-such-go-binary", Logger: quiet()})
	if err == nil || !strings.Contains(err.Error(), "toolchain not found") {
		t.Fatalf("Build: got %v, want toolchain error", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("output dir created although nothing was built")
	}
}

func TestEnsure_AlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, WasmFile))
	touch(t, filepath.Join(dir, ExecFile))

	ok, err := Ensure(context.Background(), Options{Dir: dir, GoBin: "no-such-go-binary", Logger: quiet()})
	if err != nil || !ok {
		t.Fatalf("Ensure: got %v, %v", ok, err)
	}
}

func TestBuild_Client(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles the wasm client")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}

	dir := t.TempDir()
	err := Build(context.Background(), Options{
		Dir:    dir,
		Pkg:    "../../cmd/tracker-wasm",
		Logger: quiet(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !Present(dir) {
		t.Fatal("client files missing after Build")
	}

	data, err := os.ReadFile(filepath.Join(dir, WasmFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "\x00asm" {
		t.Errorf("tracker.wasm: not a wasm module")
	}
}
