package cmd

import (
	"github.com/spf13/cobra"

	"mugix-storefront/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		conn, err := db.Open(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		defer conn.Close()

		return db.Migrate(conn, logger)
	},
}
