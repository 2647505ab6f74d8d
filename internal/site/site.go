// Package site exports the portfolio as static files for hosts that only
// serve assets.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mas-ajil/portfolio/internal/server"
)

// Options for Build.
type Options struct {
	OutputDir string
	// Sections are written as fragments under sections/<id>.html.
	Sections []string
	// WasmDir, when set, is copied to <out>/wasm.
	WasmDir string
	Logger  *slog.Logger
}

// Build writes index.html, section fragments, tracker.json and assets.
// It returns the number of files written.
func Build(ctx context.Context, srv *server.Server, opts Options) (int, error) {
	if opts.OutputDir == "" {
		return 0, fmt.Errorf("site: output dir is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	log := opts.Logger

	if err := os.MkdirAll(filepath.Join(opts.OutputDir, "sections"), 0o755); err != nil {
		return 0, fmt.Errorf("site: create output dir: %w", err)
	}

	written := 0
	write := func(rel string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(opts.OutputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("site: mkdir for %s: %w", rel, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("site: write %s: %w", rel, err)
		}
		written++
		log.Debug("site: wrote", "file", rel, "bytes", len(data))
		return nil
	}

	var buf bytes.Buffer
	if err := srv.RenderPage(&buf); err != nil {
		return written, fmt.Errorf("site: render page: %w", err)
	}
	if err := write("index.html", buf.Bytes()); err != nil {
		return written, err
	}

	for _, id := range opts.Sections {
		buf.Reset()
		if err := srv.RenderSection(&buf, id); err != nil {
			return written, fmt.Errorf("site: render section %s: %w", id, err)
		}
		if err := write("sections/"+id+".html", buf.Bytes()); err != nil {
			return written, err
		}
	}

	cfg, err := srv.ClientConfig().Encode()
	if err != nil {
		return written, fmt.Errorf("site: encode tracker config: %w", err)
	}
	if err := write("tracker.json", cfg); err != nil {
		return written, err
	}

	if err := copyTree(server.StaticFS(), "static", "", write); err != nil {
		return written, err
	}
	if opts.WasmDir != "" {
		if err := copyTree(os.DirFS(opts.WasmDir), ".", "wasm/", write); err != nil {
			return written, err
		}
	}

	log.Info("site: build complete", "dir", opts.OutputDir, "files", written)
	return written, nil
}

// copyTree hands every regular file under root in fsys to write, keyed by
// prefix plus its slash path.
func copyTree(fsys fs.FS, root, prefix string, write func(rel string, data []byte) error) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("site: read %s: %w", path, err)
		}
		return write(prefix+path, data)
	})
}
