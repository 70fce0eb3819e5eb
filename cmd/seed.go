package cmd

import (
	"fmt"

	"column-sync/feature/columns"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd loads a YAML model fixture into the column store.
var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Migrate the column store and load a model fixture",
	Long: `Creates the levels, grids, column_types and columns tables when missing
and inserts the levels, grids, types and columns of the YAML fixture.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		db, err := a.connect()
		if err != nil {
			return err
		}

		svc := columns.NewService(db, a.client, a.cfg.Storage.Bucket, a.cfg.Sync, a.logger)
		fixture, err := svc.Seed(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", args[0], err)
		}

		a.logger.Info("Model seeded",
			zap.Int("levels", len(fixture.Levels)),
			zap.Int("grids", len(fixture.Grids)),
			zap.Int("types", len(fixture.Types)),
			zap.Int("columns", len(fixture.Columns)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
