package cmd

import (
	"context"
	"fmt"

	"kawa-inventory/core/config"
	"kawa-inventory/core/database"
	"kawa-inventory/core/logger"
	"kawa-inventory/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the inventory database and archive",
	Long:  `Checks the database schema, the reference data a sync depends on, and the snapshot archive bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the inventory tables against the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// referenceCmd represents the integrity reference command
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Check known locations and commodities",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// archiveCmd represents the integrity archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Check and fix the snapshot archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	archiveCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the archive bucket if missing")

	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(referenceCmd)
	integrityCmd.AddCommand(archiveCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runSchema, runReference, runArchive bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	var db *gorm.DB
	if runSchema || runReference {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	client, err := newArchiveClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := integrity.NewService(client, cfg.Storage, cfg.Sync.ArchivePrefix, cfg.Sync.ArchiveSnapshots, logg, db)
	healthy := true

	if runSchema {
		logg.Info("Checking database schema...", zap.String("driver", cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Database schema matches the inventory models.")
		} else {
			healthy = false
			logg.Warn("Database schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runReference {
		logg.Info("Checking reference data...")
		report, err := svc.CheckReference(ctx)
		if err != nil {
			return fmt.Errorf("reference check failed: %w", err)
		}
		fields := []zap.Field{
			zap.Int64("locations", report.Locations),
			zap.Int64("commodities", report.Commodities),
			zap.Int64("linked_users", report.LinkedUsers),
		}
		if report.Status == "ok" {
			logg.Info("Reference data is present.", fields...)
		} else {
			healthy = false
			logg.Warn("Reference data is empty; every storage or item will be skipped as unknown.", fields...)
		}
	}

	if runArchive {
		if !svc.ArchiveEnabled() {
			logg.Info("Snapshot archive is disabled; skipping archive check.")
		} else {
			logg.Info("Checking snapshot archive...", zap.String("bucket", cfg.Storage.Bucket))
			report, err := svc.CheckArchive(ctx)
			if err != nil {
				return fmt.Errorf("archive check failed: %w", err)
			}
			switch {
			case report.Exists:
				logg.Info("Archive bucket is present.", zap.Int("snapshots", report.Snapshots))
			case fixFlag:
				if err := svc.FixArchive(ctx); err != nil {
					return fmt.Errorf("failed to create archive bucket: %w", err)
				}
				logg.Info("Archive bucket created.")
			default:
				healthy = false
				logg.Warn("Archive bucket is missing. Run with --fix to create it.")
			}
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks reported problems")
	}
	return nil
}
