package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"cobible/internal/config"
	"cobible/internal/database"
	"cobible/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the store schema",
	Long:  "Runs the embedded migrations against the store selected by db.driver (sqlite or pgx). The oracle schema is provisioned by the DBA.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(db *sql.DB, driver string) error {
			return database.MigrateUp(db, driver)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		all, _ := cmd.Flags().GetBool("all")
		if all {
			steps = 0
		} else if steps <= 0 {
			return fmt.Errorf("--steps must be positive, or pass --all")
		}
		return withStore(cmd.Context(), func(db *sql.DB, driver string) error {
			return database.MigrateDown(db, driver, steps)
		})
	},
}

var appConfig *config.Config

func init() {
	rootCmd.AddCommand(upCmd, downCmd)
	downCmd.Flags().Int("steps", 1, "number of migrations to roll back")
	downCmd.Flags().Bool("all", false, "roll back every migration")
}

func withStore(ctx context.Context, fn func(db *sql.DB, driver string) error) error {
	defer logger.Sync()

	db, err := database.Open(ctx, appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db.DB, appConfig.DB.Driver)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
