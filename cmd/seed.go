package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/pcease-api/migration"
	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/seed"
)

var (
	seedFile   string
	seedEnrich bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a catalog into the component store",
	Long: `Upserts components from the embedded catalog, or from --file, keyed by
category and id. Re-running replaces existing rows.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML catalog file (default: embedded catalog)")
	seedCmd.Flags().BoolVar(&seedEnrich, "enrich", false, "Derive structured specs before writing")
}

func loadCatalog(path string) (map[models.Category][]models.Component, error) {
	if path == "" {
		return seed.Load()
	}
	return seed.LoadFile(path)
}

func runSeed(cmd *cobra.Command, args []string) error {
	grouped, err := loadCatalog(seedFile)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := migration.SeedCatalog(cmd.Context(), store.Components, grouped, seedEnrich)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d components (%d enriched)\n", result.Written, result.Enriched)
	return nil
}
