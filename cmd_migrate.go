package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)(cmd.Context())

		logger.Info("Database migrated")
		return nil
	},
}
