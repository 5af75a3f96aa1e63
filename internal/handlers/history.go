package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roulette-table-backend/internal/services"
)

type HistoryHandler struct {
	historyService *services.HistoryService
}

func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetRounds returns the most recent resolved rounds for a table, newest
// first. Only registered when Redis is configured.
func (h *HistoryHandler) GetRounds(c *gin.Context) {
	tableID := c.Param("id")
	if tableID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table id is required"})
		return
	}

	limit := services.MaxStoredRounds
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	rounds, err := h.historyService.RecentRounds(tableID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"table_id": tableID,
		"rounds":   rounds,
	})
}
