package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/cache"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/config"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/metrics"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/scanner"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.SeedDevData {
		if err := database.SeedDevKeywords(ctx); err != nil {
			log.Printf("Failed to seed dev keywords: %v", err)
		}
	}

	// Scan pipeline
	keywordCache := cache.New(cfg.KeywordCacheTTL)
	sc := scanner.New(database, keywordCache)

	// Metrics
	metrics.Init(database)

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, sc); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
