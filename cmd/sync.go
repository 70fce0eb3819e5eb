package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"column-sync/feature/columns"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncFile          string
	syncObject        string
	syncDeleteMissing bool
	yesConfirm        bool
)

// syncCmd runs one reconciliation pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the columns of the model from a CSV schedule",
	Long: `Creates, moves and retypes columns so the model matches the CSV schedule.

The input is read from --file, from a bucket object with --object, or from
the configured sync.csv_path. The report is printed on success.

Examples:
  # Sync from the configured path
  sync

  # Sync from an uploaded object
  sync --object imports/columns.csv

  # Delete columns missing from the CSV (asks for confirmation)
  sync --file columns.csv --delete-missing`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncFile, "file", "f", "", "CSV file to sync (defaults to sync.csv_path)")
	syncCmd.Flags().StringVar(&syncObject, "object", "", "CSV object in the storage bucket")
	syncCmd.Flags().BoolVar(&syncDeleteMissing, "delete-missing", false, "Delete columns absent from the CSV")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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
	opts := svc.Options()
	if cmd.Flags().Changed("delete-missing") {
		opts.DeleteMissing = syncDeleteMissing
	}

	if opts.DeleteMissing && !confirmDestructiveAction() {
		a.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	var res *columns.Result
	switch {
	case syncObject != "":
		a.logger.Info("Syncing columns", zap.String("object", syncObject))
		res, err = svc.SyncObject(cmd.Context(), syncObject, opts)
	default:
		path := syncFile
		if path == "" {
			path = a.cfg.Sync.CSVPath
		}
		a.logger.Info("Syncing columns", zap.String("file", path))
		res, err = svc.SyncFile(cmd.Context(), path, opts)
	}

	out, err := columns.Report(res, err)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if res != nil {
		a.logger.Info("Sync completed",
			zap.String("summary", res.Summary),
			zap.String("archive", res.Archive))
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("Columns missing from the CSV will be deleted. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
