package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pongarena/backend/internal/results"
)

// RecentMatches returns the latest finished matches.
func RecentMatches(store *results.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		rows, err := store.Recent(c.Request.Context(), limit)
		if err != nil {
			log.Printf("[DB] recent matches query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load matches"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": rows})
	}
}

// PlayerMatches returns one user's match history.
func PlayerMatches(store *results.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		rows, err := store.ByUser(c.Request.Context(), userID, limit)
		if err != nil {
			log.Printf("[DB] player matches query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load matches"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": rows})
	}
}
