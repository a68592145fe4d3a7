package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/ingest"
	"insight-center-be/internal/repository/unitofwork"
	"insight-center-be/pkg/database"
	"insight-center-be/pkg/events"
	pktNats "insight-center-be/pkg/nats"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	pincodesPath := pflag.String("pincodes", "data/pincode_metrics.csv", "pincode metrics CSV")
	policiesPath := pflag.String("policies", "data/policy_recommendations.csv", "policy recommendations CSV")
	insightsDir := pflag.String("insights", "data/insights", "directory of markdown insight files")
	replace := pflag.Bool("replace", true, "replace existing policies and insights instead of appending")
	pflag.Parse()

	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: Failed to migrate:", err)
	}

	pincodes, err := readPincodes(*pincodesPath)
	if err != nil {
		log.Fatal("Error: ", err)
	}
	policies, err := readPolicies(*policiesPath)
	if err != nil {
		log.Fatal("Error: ", err)
	}
	insights, err := readInsights(*insightsDir)
	if err != nil {
		log.Fatal("Error: ", err)
	}

	ctx := context.Background()
	err = unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).Do(ctx, func(uow unitofwork.UnitOfWork) error {
		return load(ctx, uow, pincodes, policies, insights, *replace)
	})
	if err != nil {
		log.Fatal("Error: Seeding rolled back: ", err)
	}

	log.Printf("Seeding completed: %d pincodes, %d policies, %d insights", len(pincodes), len(policies), len(insights))

	announceReload(events.DatasetsReloaded(len(pincodes), len(policies), len(insights)))
}

// announceReload tells running servers to drop their dataset caches. Seeding
// has already committed, so a failure here only delays the refresh to the
// cache TTL.
func announceReload(event events.BaseEvent) {
	if enabled, _ := strconv.ParseBool(os.Getenv("NATS_ENABLED")); !enabled {
		return
	}
	url := os.Getenv("NATS_URL")
	if url == "" {
		url = "nats://localhost:4222"
	}

	pub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Printf("Warning: reload not announced: %v", err)
		return
	}
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, event); err != nil {
		log.Printf("Warning: reload not announced: %v", err)
		return
	}
	log.Println("Announced dataset reload")
}

func load(ctx context.Context, uow unitofwork.UnitOfWork, pincodes []*entity.PincodeRecord, policies []*entity.PolicyRecommendation, insights []*entity.Insight, replace bool) error {
	if len(pincodes) > 0 {
		log.Println("Seeding pincode metrics...")
		if err := uow.PincodeRepository().UpsertMany(ctx, pincodes); err != nil {
			return err
		}
	}

	if len(policies) > 0 {
		log.Println("Seeding policy recommendations...")
		if replace {
			if err := uow.PolicyRepository().DeleteAll(ctx); err != nil {
				return err
			}
		}
		if err := uow.PolicyRepository().CreateMany(ctx, policies); err != nil {
			return err
		}
	}

	if len(insights) > 0 {
		log.Println("Seeding insights...")
		if replace {
			if err := uow.InsightRepository().DeleteAll(ctx); err != nil {
				return err
			}
		}
		if err := uow.InsightRepository().CreateMany(ctx, insights); err != nil {
			return err
		}
	}
	return nil
}

func readPincodes(path string) ([]*entity.PincodeRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Printf("Info: %s not found, skipping pincode metrics", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ParsePincodeCSV(f)
}

func readPolicies(path string) ([]*entity.PolicyRecommendation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Printf("Info: %s not found, skipping policies", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ParsePolicyCSV(f)
}

func readInsights(dir string) ([]*entity.Insight, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".md" {
			files = append(files, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		log.Printf("Info: %s not found, skipping insights", dir)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	insights := make([]*entity.Insight, 0, len(files))
	for i, path := range files {
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		insight := ingest.ParseInsight(path, string(body))
		if insight.SortOrder == 0 {
			insight.SortOrder = i + 1
		}
		insights = append(insights, insight)
	}
	return insights, nil
}
