package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/export"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/lifecycle"
)

var (
	exportOut    string
	exportStatus string
	exportTSP    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tokens to CSV",
	Long: `Export the token listing to CSV. The default file name encodes the
current date, e.g. tokens-export-2026-08-31.csv; use --out - to write
to stdout.`,
	Run: func(cmd *cobra.Command, _ []string) {
		opts := lifecycle.ListOptions{TSP: exportTSP, EnrichDetails: true}
		opts.Filter.Status = exportStatus

		tokens, err := manager.ListTokens(cmd.Context(), opts)
		if err != nil {
			fail("%v", err)
		}

		if exportOut == "-" {
			if err := export.WriteCSV(os.Stdout, tokens); err != nil {
				fail("%v", err)
			}
			return
		}

		path := exportOut
		if path == "" {
			path = export.Filename(time.Now())
		}
		f, err := os.Create(path) // #nosec G304 - operator-chosen output path
		if err != nil {
			fail("%v", err)
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteCSV(f, tokens); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %d token(s) to %s\n", len(tokens), path)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (- for stdout)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "filter by coded status")
	exportCmd.Flags().StringVar(&exportTSP, "tsp", "", "filter by token service provider")
}
