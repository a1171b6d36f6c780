package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pongarena/backend/internal/admin"
	"github.com/pongarena/backend/internal/config"
	"github.com/pongarena/backend/internal/game"
)

// ListSessions returns sessions with both seats filled, for the
// spectator browser.
func ListSessions(engine *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		listings := engine.Listings()
		if listings == nil {
			listings = []game.SessionListing{}
		}
		c.JSON(http.StatusOK, gin.H{"sessions": listings})
	}
}

// KillSession force-terminates a session. Requires the admin token;
// killing an unknown session still returns 200 so operators can retry
// safely.
func KillSession(engine *game.Engine, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Admin-Token")
		if !admin.VerifyToken(cfg.AdminTokenHash, token) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid admin token"})
			return
		}

		id := c.Param("id")
		engine.KillSession(id)
		log.Printf("[ADMIN] kill requested for session %s", id)
		c.JSON(http.StatusOK, gin.H{"killed": id})
	}
}
