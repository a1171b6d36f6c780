package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pongarena/backend/internal/api"
	"github.com/pongarena/backend/internal/config"
	"github.com/pongarena/backend/internal/database"
	"github.com/pongarena/backend/internal/game"
	"github.com/pongarena/backend/internal/migrations"
	"github.com/pongarena/backend/internal/presence"
	"github.com/pongarena/backend/internal/redis"
	"github.com/pongarena/backend/internal/results"
	"github.com/pongarena/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Match engine with its collaborators
	store := results.New(db)
	engine := game.NewEngine(game.Settings{
		WinningScore: cfg.WinningScore,
		BallSpeed:    cfg.BallSpeed,
		TickInterval: time.Duration(cfg.TickMS) * time.Millisecond,
		MaxIdle:      time.Duration(cfg.SessionMaxIdleMinutes) * time.Minute,
	}, presence.New(rdb), store)

	// WebSocket hub; the engine announces session removals through it
	hub := ws.NewHub()
	go hub.Run()
	engine.SetAnnouncer(hub)

	// Sweep worker prunes finished and abandoned sessions
	go game.StartSweepWorker(context.Background(), engine,
		time.Duration(cfg.SessionSweepSeconds)*time.Second)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, cfg, engine, hub, store)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting PongArena server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
