/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/sparkify/etl/config"
	"github.com/sparkify/etl/internal/db"
	"github.com/spf13/cobra"
)

// createdbCmd represents the createdb command
var createdbCmd = &cobra.Command{
	Use:   "createdb",
	Short: "Drops and recreates the ETL database",
	Long: `Drops the configured database, creates it again and applies all
migrations. Connects through DB_DEFAULT_NAME to do so. Usage:

	etl createdb
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		conn, err := db.OpenDefault(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect to %s: %w", cfg.Database.DefaultDBName, err)
		}
		defer conn.Close()

		if err := db.RecreateDatabase(cmd.Context(), conn, cfg.Database.DBName); err != nil {
			return err
		}
		if err := db.MigrateUp(cfg); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "database %s created\n", cfg.Database.DBName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createdbCmd)
}
