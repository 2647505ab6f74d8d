package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mas-ajil/portfolio/internal/site"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the portfolio as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		srv, p, err := newServer(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		n, err := site.Build(cmd.Context(), srv, site.Options{
			OutputDir: buildOut,
			Sections:  p.NavIDs(),
			WasmDir:   srv.WasmDir(),
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s\n", n, buildOut)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	rootCmd.AddCommand(buildCmd)
}
