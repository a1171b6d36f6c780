package api

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/pongarena/backend/internal/api/handlers"
	"github.com/pongarena/backend/internal/config"
	"github.com/pongarena/backend/internal/game"
	"github.com/pongarena/backend/internal/results"
	"github.com/pongarena/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, engine *game.Engine, hub *ws.Hub, store *results.Store) {
	// CORS middleware for React development server
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Admin-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] Aggressive no-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(engine, hub))

		// Match engine entry point
		v1.GET("/ws", ws.HandleWebSocket(hub, engine, cfg.JWTSecret))

		// Spectator browser view of joinable sessions
		v1.GET("/sessions", handlers.ListSessions(engine))

		// Match history
		matches := v1.Group("/matches")
		{
			matches.GET("/recent", handlers.RecentMatches(store))
			matches.GET("/player/:id", handlers.PlayerMatches(store))
		}

		// Operator kill switch
		v1.DELETE("/session/:id", handlers.KillSession(engine, cfg))
	}
}
