package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mas-ajil/portfolio/internal/wasmbuild"
)

var (
	wasmOut string
	wasmPkg string
)

var wasmCmd = &cobra.Command{
	Use:   "wasm",
	Short: "Compile the in-page tracker client to WebAssembly",
	Long: `Builds ./cmd/tracker-wasm with GOOS=js GOARCH=wasm and copies the Go
runtime shim wasm_exec.js next to it. Run it from the module root. serve and
build do this on their own when wasm_build is enabled and the client is
missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		out := wasmOut
		if out == "" {
			out = cfg.WasmDir
		}
		if out == "" {
			return fmt.Errorf("no output dir: set --out or wasm_dir")
		}

		if err := wasmbuild.Build(cmd.Context(), wasmbuild.Options{
			Dir:    out,
			Pkg:    wasmPkg,
			Logger: logger,
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s to %s\n", wasmbuild.WasmFile, wasmbuild.ExecFile, out)
		return nil
	},
}

func init() {
	wasmCmd.Flags().StringVarP(&wasmOut, "out", "o", "", "output directory (default: wasm_dir)")
	wasmCmd.Flags().StringVar(&wasmPkg, "pkg", wasmbuild.DefaultPkg, "client package to compile")
	rootCmd.AddCommand(wasmCmd)
}
