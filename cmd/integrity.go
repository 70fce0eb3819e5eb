package cmd

import (
	"context"

	"column-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the bucket structure and the column store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and migrate the column store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the missing bucket and folders")
	schemaCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate missing tables and columns")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	logg := a.logger
	defer logg.Sync()

	// Database is optional for the structure check.
	var db *gorm.DB
	if conn, err := a.connect(); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(a.client, a.cfg.Storage.Bucket, a.cfg.Sync.ArchivePrefix, db, logg)
	fix := fixFlag && runStructure != runSchema

	if runStructure {
		logg.Info("Checking bucket structure...", zap.String("bucket", a.cfg.Storage.Bucket))
		report, err := svc.CheckStructure(ctx)
		if err != nil {
			return err
		}

		if report.BucketExists && len(report.Missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing structure detected",
				zap.Bool("bucket_exists", report.BucketExists),
				zap.Strings("missing", report.Missing))

			if fix {
				logg.Info("Fixing missing structure...")
				if err := svc.FixStructure(ctx, report); err != nil {
					return err
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if runSchema {
		if fix {
			logg.Info("Migrating column store schema...")
			if err := svc.FixSchema(ctx); err != nil {
				return err
			}
		}

		logg.Info("Checking column store schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}

		if report.Matched {
			logg.Info("Schema matches the models.", zap.String("driver", report.Driver))
			return nil
		}

		logg.Warn("Schema mismatches found", zap.String("driver", report.Driver))
		for table, tbl := range report.Tables {
			switch {
			case !tbl.Exists:
				logg.Warn("Missing table", zap.String("table", table))
			case tbl.Status != "ok":
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
		if !fix {
			logg.Info("Run 'integrity schema --fix' to migrate.")
		}
	}

	return nil
}
