package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/logger"
	"github.com/viewtube/backend/internal/seed"
)

var rootCmd = &cobra.Command{
	Use:   "viewtube",
	Short: "ViewTube CLI - Administer the ViewTube backend",
	Long: `ViewTube CLI provides command-line access to backend administration.
Run database migrations and seed development data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: .env file not found, using system environment variables")
		}
		if err := logger.Initialize(os.Getenv("LOG_LEVEL"), "cli.log"); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Initialize(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Println("Migrations applied successfully")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the development database with fake data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Initialize(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		seeder := seed.NewSeeder(database.DB)

		clean, _ := cmd.Flags().GetBool("clean")
		if clean {
			if err := seeder.Clean(); err != nil {
				return fmt.Errorf("clean failed: %w", err)
			}
			fmt.Println("Existing data removed")
		}

		if err := seeder.SeedDev(); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		fmt.Println("Development database seeded successfully")
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("clean", false, "Remove existing data before seeding")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
