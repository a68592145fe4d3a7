package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insight-center-be/internal/bootstrap"
	"insight-center-be/internal/config"
	"insight-center-be/internal/server"
	"insight-center-be/internal/tracer"
	"insight-center-be/pkg/database"
)

func main() {
	// 1. Load Configuration (.env included)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Panicf("Invalid configuration: %v", err)
	}

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if database.IsSQLiteDSN(cfg.Database.Connection) {
		if err := database.AutoMigrate(gormDB); err != nil {
			log.Panicf("Unable to migrate SQLite DB: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go container.WebSocketHub.Run(ctx)
	go container.NavigationService.BroadcastHealth(ctx, cfg.Dashboard.HealthBroadcastPeriod)
	go func() {
		if err := container.DatasetReloadListener.Listen(ctx); err != nil {
			log.Printf("Dataset Reload Listener Error: %v", err)
		}
	}()

	log.Println("Background: Starting Search Audit Consumer...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
