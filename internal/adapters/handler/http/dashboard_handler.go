package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Im044/habit-tracker-portal/internal/core/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetDashboard)
}

// GetDashboard computes the summary as of today, or as of the optional
// ?date=YYYY-MM-DD override.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	asOf := time.Now().UTC()

	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	summary, err := h.svc.Dashboard(c.Request.Context(), asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
