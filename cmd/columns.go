package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"column-sync/core/utils"
	"column-sync/feature/columns"
	"column-sync/feature/columns/models"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var columnsJSON bool

// columnsCmd lists the placed columns.
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the columns of the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}

		db, err := a.connect()
		if err != nil {
			return err
		}

		svc := columns.NewService(db, a.client, a.cfg.Storage.Bucket, a.cfg.Sync, a.logger)
		views, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		if columnsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		}
		return renderColumns(cmd.OutOrStdout(), views)
	},
}

func init() {
	columnsCmd.Flags().BoolVar(&columnsJSON, "json", false, "Print JSON instead of a table")
	RootCmd.AddCommand(columnsCmd)
}

func renderColumns(w io.Writer, views []models.ColumnView) error {
	table := tablewriter.NewTable(w)
	table.Header("ID", "Mark", "X", "Y", "Z", "Family", "Type", "Base", "Top")

	for _, v := range views {
		if err := table.Append(
			utils.ToString(v.ID),
			v.Mark,
			fmt.Sprintf("%.3f", v.X),
			fmt.Sprintf("%.3f", v.Y),
			fmt.Sprintf("%.3f", v.Z),
			v.Family,
			v.Type,
			v.BaseLevel,
			v.TopLevel,
		); err != nil {
			return err
		}
	}

	return table.Render()
}
