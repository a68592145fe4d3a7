package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"insight-center-be/internal/config"
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/internal/repository/unitofwork"
	"insight-center-be/internal/service"
	"insight-center-be/pkg/database"
	"insight-center-be/pkg/navigation"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

func main() {
	dsn := pflag.String("dsn", "", "database connection string (defaults to DB_CONNECTION_STRING)")
	timeout := pflag.Duration("timeout", 10*time.Second, "overall check timeout")
	pflag.Parse()

	cfg := config.Load()
	if *dsn == "" {
		*dsn = cfg.Database.Connection
	}

	db, err := database.NewGormDBFromDSN(*dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	datasets := service.NewDatasetService(
		unitofwork.NewRepositoryFactory(db),
		cfg.Cache.DatasetTTL,
		cfg.Cache.CleanupInterval,
		cfg.Dashboard.PolicyTopN,
		logger.NewNopLogger(),
	)
	health := navigation.NewDataHealth(datasets.ValidateDataSources(ctx))

	color.Cyan("Data sources")
	for _, name := range []string{service.SourcePincodeMetrics, service.SourcePolicies, service.SourceInsights} {
		if health.Sources[name] {
			fmt.Printf("  %s %s\n", color.GreenString("OK  "), name)
		} else {
			fmt.Printf("  %s %s\n", color.RedString("FAIL"), name)
		}
	}

	if !health.Healthy {
		color.Red("%s", health.Label)
		os.Exit(1)
	}
	color.Green("%s", health.Label)
}
