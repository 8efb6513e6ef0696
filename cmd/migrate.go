package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/pcease-api/config"
	"github.com/LovationAdmin/pcease-api/utils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Store != config.StorePostgres {
			return fmt.Errorf("migrate needs STORE=postgres")
		}
		db, err := openDB(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer db.Close()
		utils.SafeInfo("✅ Migrations applied (%d statements)", len(config.Migrations))
		return nil
	},
}
