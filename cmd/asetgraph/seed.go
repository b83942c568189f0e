package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asetgraph/internal/loader"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Apply a YAML seed file",
	Long: `Upserts every document in the seed by _key and assigns relations that do
not exist yet. Running the same seed again creates nothing new.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, cleanup, err := openDataSources(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := loader.New(ds, sugar.Named("loader")).LoadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %s\n", args[0], res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
