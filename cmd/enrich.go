package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/pcease-api/migration"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Backfill derived specs for stored components",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer closeStore()

		result, err := migration.EnrichSpecs(cmd.Context(), store.Components)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %d, unchanged %d, failed %d\n",
			result.Updated, result.Unchanged, result.Failed)
		return nil
	},
}
