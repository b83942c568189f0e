package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"asetgraph/internal/codec"
	"asetgraph/internal/service"
)

var (
	exportFormat   string
	exportOutput   string
	importFormat   string
	importStrategy string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every collection as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := codec.ForFormat(exportFormat); err != nil {
			return err
		}

		ds, cleanup, err := openDataSources(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}
		return service.NewArchiveService(ds).Export(cmd.Context(), exportFormat, out)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a dataset written by export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := codec.ForPath(args[0])
		if importFormat != "" {
			var err error
			if c, err = codec.ForFormat(importFormat); err != nil {
				return err
			}
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		ds, cleanup, err := openDataSources(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := service.NewArchiveService(ds).Import(cmd.Context(), c, f, importStrategy)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format (default: from the file extension)")
	importCmd.Flags().StringVar(&importStrategy, "strategy", service.StrategyMerge, "merge or replace")
	rootCmd.AddCommand(exportCmd, importCmd)
}
