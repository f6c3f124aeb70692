package cmd

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/buildcanada/trade-tracker/internal/config"
	"github.com/buildcanada/trade-tracker/internal/handlers"
	"github.com/buildcanada/trade-tracker/internal/store"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tracker API server",
	Long:  `Start the HTTP server backing the public dashboard and the admin panel.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		// Use PORT env var if set, otherwise use flag value
		if envPort := os.Getenv("PORT"); envPort != "" && port == "8080" {
			port = envPort
		}
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET environment variable is required")
		}

		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := store.InitSchema(context.Background(), db, cfg.AgreementsTable, cfg.ThemesTable); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		agreementStore := store.NewAgreementStore(db, cfg.AgreementsTable)
		themeStore := store.NewThemeStore(db, cfg.ThemesTable, cfg.AgreementsTable)
		userStore := store.NewUserStore(db)

		app := fiber.New(fiber.Config{
			AppName: "Trade Barriers Tracker",
		})

		app.Use(recover.New())
		app.Use(logger.New())
		app.Use(cors.New())

		secret := []byte(cfg.JWTSecret)

		app.Get("/health", handlers.HealthHandler(db))

		// Public dashboard routes
		app.Get("/api/agreements", handlers.ListAgreementsHandler(agreementStore))
		app.Get("/api/agreements/:id", handlers.GetAgreementHandler(agreementStore))
		app.Get("/api/agreements/:id/timeline", handlers.TimelineHandler(agreementStore))
		app.Get("/api/dashboard", handlers.DashboardHandler(agreementStore))
		app.Get("/api/activity", handlers.ActivityHandler(agreementStore))
		app.Get("/api/themes", handlers.ListThemesHandler(themeStore))

		// Auth routes
		app.Post("/api/auth/login", handlers.LoginHandler(userStore, secret, cfg.TokenTTL))
		app.Get("/api/auth/session", handlers.SessionHandler(userStore, secret))
		app.Post("/api/auth/update-password", handlers.UpdatePasswordHandler(userStore))

		// Admin routes
		admin := app.Group("/api", handlers.RequireAuth(secret))
		admin.Post("/agreements", handlers.CreateAgreementHandler(agreementStore))
		admin.Put("/agreements/:id", handlers.UpdateAgreementHandler(agreementStore))
		admin.Delete("/agreements/:id", handlers.DeleteAgreementHandler(agreementStore))
		admin.Post("/themes", handlers.CreateThemeHandler(themeStore))
		admin.Put("/themes/:id", handlers.UpdateThemeHandler(themeStore))
		admin.Delete("/themes/:id", handlers.DeleteThemeHandler(themeStore))

		log.Printf("Starting server on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
