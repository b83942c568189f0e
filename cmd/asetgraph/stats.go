package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show sektor counts and budget per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, cleanup, err := openDataSources(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := ds.Sektor.StatsByCategory(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL BUDGET")
		for _, s := range stats {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", s.Category, s.Count, s.TotalBudget)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
