package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// seed-admin flags
	adminEmail    string
	adminPassword string
	rotateSecret  bool
)

// seedAdminCmd writes the admin credentials into the env file
var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Write admin credentials to the .env file",
	Long: `Write ADMIN_EMAIL and ADMIN_PASSWORD to the env file, keeping every
other entry. A JWT_SECRET is generated when none exists.

Examples:
  mugix seed-admin --email admin@mugix.com --password s3cret
  mugix seed-admin --email admin@mugix.com --password s3cret --rotate-secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminEmail == "" || adminPassword == "" {
			return errors.New("--email and --password are required")
		}
		return seedAdmin(envFile, adminEmail, adminPassword, rotateSecret)
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	seedAdminCmd.Flags().BoolVar(&rotateSecret, "rotate-secret", false, "Replace an existing JWT_SECRET")
}

// seedAdmin upserts the admin entries of path
func seedAdmin(path, email, password string, rotate bool) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		env = map[string]string{}
	}

	env["ADMIN_EMAIL"] = email
	env["ADMIN_PASSWORD"] = password
	if env["JWT_SECRET"] == "" || rotate {
		env["JWT_SECRET"] = rand.Text()
	}

	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Admin %s written to %s\n", email, path)
	return nil
}
