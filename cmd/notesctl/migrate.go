package main

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}
	cmd.AddCommand(newMigrateDirCmd("up", "Apply all pending migrations", migrate.Up))
	cmd.AddCommand(newMigrateDirCmd("down", "Roll back the latest migration", migrate.Down))
	return cmd
}

func newMigrateDirCmd(use, short string, dir migrate.MigrationDirection) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			db, err := database.NewPostgresDB(cfg, logger)
			if err != nil {
				return err
			}
			defer database.CloseDB(db, logger)

			n, err := database.Migrate(db, dir, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d migration(s) applied\n", use, n)
			return nil
		},
	}
}
