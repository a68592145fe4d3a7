package main

import (
	"log"
	"os"

	"insight-center-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate every dashboard table
	log.Printf("Step 1: Running AutoMigrate for %d tables...", len(database.Models()))
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: reporting views (Postgres only)
	if database.IsSQLiteDSN(dsn) {
		log.Println("Success: SQLite schema migrated.")
		return
	}

	log.Println("Step 2: Creating reporting views...")
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW district_risk_summary AS
		 SELECT state, district,
		        COUNT(*) AS pincodes,
		        SUM(total_enrolments) AS enrolments,
		        SUM(demographic_updates + biometric_updates) AS updates,
		        SUM(CASE WHEN risk_category = 'critical' THEN 1 ELSE 0 END) AS critical_pincodes
		 FROM pincode_metrics
		 GROUP BY state, district;`,

		`CREATE OR REPLACE VIEW daily_search_activity AS
		 SELECT date_trunc('day', created_at) AS day, outcome, COUNT(*) AS searches
		 FROM search_events
		 GROUP BY 1, 2
		 ORDER BY 1 DESC;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed successfully via GORM.")
}
