// Package cmd holds the pcease command line.
package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/pcease-api/config"
	"github.com/LovationAdmin/pcease-api/migration"
	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/seed"
	"github.com/LovationAdmin/pcease-api/utils"
)

var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "pcease",
	Short: "PCease API - PC parts catalog, build advisor and forum",
	Long: `PCease serves a PC parts catalog priced across Indian retailers,
a budget build advisor, saved builds and a community forum.

Run "pcease serve" to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load()
		if err != nil {
			return err
		}
		utils.InitLogger(settings.IsProduction(), settings.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		utils.SyncLogger()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(recommendCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// openStore returns the configured store and a close func. The memory store
// starts with the embedded catalog loaded.
func openStore(ctx context.Context, s config.Settings) (*repository.Store, func(), error) {
	if s.Store == config.StoreMemory {
		store := repository.NewMemoryStore()
		grouped, err := seed.Load()
		if err != nil {
			return nil, nil, err
		}
		if _, err := migration.SeedCatalog(ctx, store.Components, grouped, true); err != nil {
			return nil, nil, err
		}
		utils.SafeInfo("✅ In-memory store ready")
		return store, func() {}, nil
	}

	db, err := openDB(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgresStore(db), func() { db.Close() }, nil
}

func openDB(ctx context.Context, s config.Settings) (*sql.DB, error) {
	db, err := config.InitDB(ctx, s.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	utils.SafeInfo("✅ Database connected successfully")

	if err := config.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
