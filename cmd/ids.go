package cmd

import (
	"fmt"

	"column-sync/feature/columns"

	"github.com/spf13/cobra"
)

var idsOutput string

// idsCmd fills the column_id column of a CSV schedule.
var idsCmd = &cobra.Command{
	Use:   "ids [file]",
	Short: "Populate the column_id of every CSV row",
	Long: `Rewrites column_id as {alpha_grid}{numeric_grid}-{base_level}{top_level}
for every row, e.g. "A1-L0L1". The file is rewritten in place unless
--output is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}

		in := a.cfg.Sync.CSVPath
		if len(args) == 1 {
			in = args[0]
		}

		n, err := columns.PopulateIDsFile(in, idsOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Populated %d column ids\n", n)
		return nil
	},
}

func init() {
	idsCmd.Flags().StringVarP(&idsOutput, "output", "o", "", "Write to this file instead of rewriting the input")
	RootCmd.AddCommand(idsCmd)
}
