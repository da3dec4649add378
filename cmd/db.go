package cmd

import (
	"context"
	"fmt"
	"time"

	"sbml-builder/backend/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
)

var dbTimeout time.Duration

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance commands",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the models, components and simulations tables if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := model.InitDB(cfg); err != nil {
			return err
		}
		defer model.CloseDB()
		color.Green("✔ database schema initialized (%s)", cfg.DBName)
		return nil
	},
}

var dbCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check database connectivity",
	Long: `Check that the configured database accepts connections without a
password (trust authentication) or with DB_PASSWORD when one is set.

Examples:
  sbml-builder db check
  sbml-builder db check --timeout 10s
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := model.Open(postgres.Open(cfg.DSN())); err != nil {
			color.Red("✘ database connection failed: %v", err)
			return err
		}
		defer model.CloseDB()

		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		if err := model.Ping(ctx); err != nil {
			color.Red("✘ database ping failed: %v", err)
			return fmt.Errorf("ping database: %w", err)
		}
		color.Green("✔ database %s@%s:%d/%s is reachable", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return nil
	},
}

func init() {
	dbCheckCmd.Flags().DurationVarP(&dbTimeout, "timeout", "t", 5*time.Second, "timeout for the connectivity check")
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbCheckCmd)
}
