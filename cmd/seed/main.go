package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"jobtrack/internal/config"
	"jobtrack/internal/db"
	"jobtrack/internal/model"
	"jobtrack/internal/repository"
)

const defaultSeedFile = "seed/applications.json"

// SeedApplicationData represents one entry of the seed file.
type SeedApplicationData struct {
	CompanyName     string `json:"company_name"`
	JobTitle        string `json:"job_title"`
	Status          string `json:"status"`
	ApplicationDate string `json:"application_date"`
	JobDescription  string `json:"job_description"`
	Notes           string `json:"notes"`
	URL             string `json:"url"`
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Application{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seedFile := os.Getenv("SEED_FILE")
	if seedFile == "" {
		seedFile = defaultSeedFile
	}

	log.Printf("Loading applications from: %s", seedFile)
	entries, err := loadSeedFile(seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d applications from file", len(entries))

	// Convert to model.Application
	apps := make([]model.Application, 0, len(entries))
	skipped := 0
	for _, item := range entries {
		if item.CompanyName == "" || item.JobTitle == "" {
			log.Printf("Skipping entry without company_name/job_title: %+v", item)
			skipped++
			continue
		}

		status := item.Status
		if status == "" {
			status = model.DefaultStatus
		}

		appDate := time.Now()
		if item.ApplicationDate != "" {
			parsed, err := time.Parse("2006-01-02", item.ApplicationDate)
			if err != nil {
				log.Printf("Skipping entry with invalid application_date: %s", item.ApplicationDate)
				skipped++
				continue
			}
			appDate = parsed
		}

		apps = append(apps, model.Application{
			CompanyName:     item.CompanyName,
			JobTitle:        item.JobTitle,
			Status:          status,
			ApplicationDate: appDate,
			JobDescription:  item.JobDescription,
			Notes:           item.Notes,
			URL:             item.URL,
		})
	}

	if skipped > 0 {
		log.Printf("Skipped %d invalid entries", skipped)
	}

	// Seed applications into database
	applicationRepo := repository.NewApplicationRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding applications into database...")
	seeded := 0
	for i := range apps {
		if err := applicationRepo.Create(ctx, &apps[i]); err != nil {
			log.Fatalf("Failed to seed applications: %v", err)
		}
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Applications created: %d", seeded)
}

// loadSeedFile reads and parses the seed JSON file.
func loadSeedFile(path string) ([]SeedApplicationData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []SeedApplicationData
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return entries, nil
}
