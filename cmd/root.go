package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mugix-storefront/config"
)

var envFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mugix",
	Short: "Mugix storefront API",
	Long: `Mugix storefront API: public catalog, order composition through
WhatsApp and email links, contact form and the admin area.

Commands:
  serve       - Start the HTTP server (default)
  migrate     - Apply database migrations
  seed-admin  - Write admin credentials to the .env file`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded outside production")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedAdminCmd)
}

// loadEnv loads the .env file in development. Values in the file override
// the process environment; in production variables are set directly.
func loadEnv() {
	if env := os.Getenv("APP_ENV"); env == "production" || env == "prod" {
		return
	}
	if err := godotenv.Overload(envFile); err != nil {
		log.Printf("Warning: %s not loaded, using system environment variables: %v", envFile, err)
	}
}

// bootstrap loads the configuration and builds the logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}
