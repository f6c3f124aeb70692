package cmd

import (
	"context"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildcanada/trade-tracker/internal/config"
	"github.com/buildcanada/trade-tracker/internal/store"
)

var adminEmail string
var adminPassword string

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or update an admin user",
	Long: `Create an admin account for the management interface, or reset the
password of an existing one.

Examples:
  ./tracker create-admin --email admin@example.com --password s3cret`,
	Run: runCreateAdmin,
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "Admin email address")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "w", "", "Admin password (min 6 characters)")
	createAdminCmd.MarkFlagRequired("email")
	createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	ctx := context.Background()

	email := strings.ToLower(strings.TrimSpace(adminEmail))
	if email == "" {
		log.Fatal("Email is required")
	}
	if len(adminPassword) < 6 {
		log.Fatal("Password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.InitSchema(ctx, db, cfg.AgreementsTable, cfg.ThemesTable); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	user, err := store.NewUserStore(db).Upsert(ctx, email, string(hash))
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin user ready: %s (%s)", user.Email, user.ID)
}
