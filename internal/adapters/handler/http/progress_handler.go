package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
	"github.com/Im044/habit-tracker-portal/internal/core/services"
)

// ProgressComputer produces the monthly report this handler serves.
// In production it is the progress service, wrapped by the redis
// decorator when a cache is configured.
type ProgressComputer interface {
	MonthlyProgress(ctx context.Context, habitID string, year int, month time.Month) (*domain.ProgressReport, error)
}

type ProgressHandler struct {
	svc ProgressComputer
}

func NewProgressHandler(svc ProgressComputer) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/progress", h.GetMonthlyProgress)
}

func (h *ProgressHandler) GetMonthlyProgress(c *gin.Context) {
	now := time.Now().UTC()

	year := now.Year()
	month := int(now.Month())
	var err error

	if yearStr := c.Query("year"); yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
	}

	if monthStr := c.Query("month"); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
	}

	report, err := h.svc.MonthlyProgress(c.Request.Context(), c.Param("id"), year, time.Month(month))
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) || errors.Is(err, services.ErrInvalidYear) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute progress"})
		return
	}

	c.JSON(http.StatusOK, report)
}
