package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"kawa-inventory/core/config"
	"kawa-inventory/core/database"
	"kawa-inventory/core/logger"
	"kawa-inventory/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncUserID uint
	syncAll    bool
	syncJSON   bool
)

// syncCmd runs inventory syncs from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync inventory from FIO",
	Long: `Replaces stored inventory with the latest FIO snapshot.

Examples:
  # One user
  sync --user 42

  # Every linked user, one after another
  sync --all

  # Print outcomes as JSON
  sync --all --json`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().UintVar(&syncUserID, "user", 0, "Sync a single user by id")
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every user with a linked FIO account")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Print outcomes as JSON")
	syncCmd.MarkFlagsMutuallyExclusive("user", "all")
	syncCmd.MarkFlagsOneRequired("user", "all")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := newArchiveClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	svc, err := newInventoryService(ctx, cfg, db, client, nil, logg)
	if err != nil {
		return err
	}

	var results []inventory.UserOutcome
	if syncAll {
		results, err = svc.SyncAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list linked users: %w", err)
		}
	} else {
		out, err := svc.SyncUser(ctx, syncUserID)
		res := inventory.UserOutcome{UserID: syncUserID, Outcome: out}
		if err != nil {
			if out == nil {
				return err
			}
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	if syncJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" || res.Outcome == nil || !res.Outcome.Success {
			failed++
		}
	}
	logg.Info("Sync completed", zap.Int("users", len(results)), zap.Int("with_errors", failed))

	if failed > 0 {
		return errors.New("one or more syncs reported errors")
	}
	return nil
}
