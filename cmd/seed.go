package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildcanada/trade-tracker/internal/config"
	"github.com/buildcanada/trade-tracker/internal/model"
	"github.com/buildcanada/trade-tracker/internal/store"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load agreements into the database from a JSON file",
	Long: `Seed bulk-loads agreements from a JSON file into PostgreSQL.

The file holds an array of agreements in the same snake_case shape the API
serves: title, summary, description, status, deadline, source_url,
launch_date, theme, jurisdictions, agreement_history.

Examples:
  # Load the sample data set
  ./tracker seed --file data/seed.json`,
	Run: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "data/seed.json", "JSON file of agreements to load")
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	ctx := context.Background()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var agreements []model.Agreement
	if err := json.Unmarshal(raw, &agreements); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.InitSchema(ctx, db, cfg.AgreementsTable, cfg.ThemesTable); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	agreementStore := store.NewAgreementStore(db, cfg.AgreementsTable)
	themeStore := store.NewThemeStore(db, cfg.ThemesTable, cfg.AgreementsTable)

	existingThemes := make(map[string]bool)
	if themes, err := themeStore.GetAll(ctx); err == nil {
		for _, t := range themes {
			existingThemes[t.Name] = true
		}
	}

	loaded := 0
	failed := 0
	for i := range agreements {
		a := &agreements[i]
		if !model.ValidAgreementStatus(a.Status) {
			log.Printf("Skipping %q: invalid status %q", a.Title, a.Status)
			failed++
			continue
		}
		if len(a.Jurisdictions) == 0 {
			a.Jurisdictions = model.DefaultJurisdictions()
		}

		if err := agreementStore.Create(ctx, a); err != nil {
			log.Printf("Failed to load %q: %v", a.Title, err)
			failed++
			continue
		}
		loaded++

		// Register the theme so it shows up in the admin theme manager.
		if name := a.ThemeName(); name != "" && !existingThemes[name] {
			if _, err := themeStore.Create(ctx, name); err != nil {
				log.Printf("Warning: failed to create theme %q: %v", name, err)
			} else {
				existingThemes[name] = true
			}
		}
	}

	log.Printf("Seed complete: %d loaded, %d failed", loaded, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
