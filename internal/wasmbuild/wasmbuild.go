// Package wasmbuild compiles the in-page tracker client to WebAssembly and
// stages it next to the Go runtime shim the browser needs to start it.
package wasmbuild

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	WasmFile = "tracker.wasm"
	ExecFile = "wasm_exec.js"

	// DefaultPkg is the client package, relative to the module root.
	DefaultPkg = "./cmd/tracker-wasm"
)

// Options for Build.
type Options struct {
	// Dir receives tracker.wasm and wasm_exec.js.
	Dir string
	// Pkg is the package to compile. Default: DefaultPkg.
	Pkg string
	// GoBin is the go command. Default: "go" from PATH.
	GoBin  string
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Pkg == "" {
		o.Pkg = DefaultPkg
	}
	if o.GoBin == "" {
		o.GoBin = "go"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Present reports whether dir holds both client files.
func Present(dir string) bool {
	if dir == "" {
		return false
	}
	for _, name := range []string{WasmFile, ExecFile} {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil || fi.IsDir() {
			return false
		}
	}
	return true
}

// Build compiles the client with GOOS=js GOARCH=wasm into opts.Dir and
// copies the toolchain's wasm_exec.js beside it.
func Build(ctx context.Context, opts Options) error {
	opts.defaults()
	if opts.Dir == "" {
		return fmt.Errorf("wasmbuild: output dir is required")
	}

	goBin, err := exec.LookPath(opts.GoBin)
	if err != nil {
		return fmt.Errorf("wasmbuild: go toolchain not found: %w", err)
	}

	goroot, err := goEnv(ctx, goBin, "GOROOT")
	if err != nil {
		return err
	}
	shim, err := findExec(goroot)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return fmt.Errorf("wasmbuild: create %s: %w", opts.Dir, err)
	}

	out := filepath.Join(opts.Dir, WasmFile)
	cmd := exec.CommandContext(ctx, goBin, "build", "-trimpath", "-o", out, opts.Pkg)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	opts.Logger.Info("wasmbuild: compiling client", "pkg", opts.Pkg, "out", out)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wasmbuild: go build %s: %w: %s", opts.Pkg, err, strings.TrimSpace(stderr.String()))
	}

	if err := copyFile(shim, filepath.Join(opts.Dir, ExecFile)); err != nil {
		return err
	}
	opts.Logger.Debug("wasmbuild: staged runtime shim", "from", shim)
	return nil
}

// Ensure builds the client unless dir already holds it. It reports whether
// the client is available afterwards.
func Ensure(ctx context.Context, opts Options) (bool, error) {
	if Present(opts.Dir) {
		return true, nil
	}
	if err := Build(ctx, opts); err != nil {
		return false, err
	}
	return true, nil
}

func goEnv(ctx context.Context, goBin, key string) (string, error) {
	out, err := exec.CommandContext(ctx, goBin, "env", key).Output()
	if err != nil {
		return "", fmt.Errorf("wasmbuild: go env %s: %w", key, err)
	}
	v := strings.TrimSpace(string(out))
	if v == "" {
		return "", fmt.Errorf("wasmbuild: go env %s is empty", key)
	}
	return v, nil
}

// findExec locates wasm_exec.js. Go 1.24 moved it from misc/wasm to lib/wasm.
func findExec(goroot string) (string, error) {
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		p := filepath.Join(goroot, filepath.FromSlash(dir), ExecFile)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("wasmbuild: %s not found under %s", ExecFile, goroot)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("wasmbuild: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("wasmbuild: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("wasmbuild: copy to %s: %w", dst, err)
	}
	return out.Close()
}
