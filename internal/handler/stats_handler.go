package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/lessonlab-backend/internal/response"
	"github.com/stemsi/lessonlab-backend/internal/service"
)

// StatsHandler exposes cumulative verification stats.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats godoc
// GET /api/v1/users/:user_id/stats
// Returns the user's attempt/success counters, percentage and grade band.
// Unknown users get zeros, not 404.
func (h *StatsHandler) GetStats(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, h.statsService.Get(id))
}
