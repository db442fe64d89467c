package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
	"github.com/Im044/habit-tracker-portal/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

type setCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/habits/:id/completions/:date", h.Set)
	router.GET("/habits/:id/completions/:date", h.Get)
	router.GET("/habits/:id/completions", h.List)
}

func (h *CompletionHandler) Get(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	record, err := h.svc.Get(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// A day with no record is a valid answer: not completed.
	if record == nil {
		c.JSON(http.StatusOK, gin.H{
			"habit_id":  c.Param("id"),
			"date":      domain.NormalizeDate(date),
			"completed": false,
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *CompletionHandler) Set(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	var req setCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.svc.Set(c.Request.Context(), services.SetCompletionInput{
		HabitID:   c.Param("id"),
		Date:      date,
		Completed: *req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *CompletionHandler) List(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	to := time.Now().UTC()
	from := to.AddDate(0, -1, 0)
	var err error

	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to format, expected YYYY-MM-DD"})
			return
		}
	}

	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from format, expected YYYY-MM-DD"})
			return
		}
	}

	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from cannot be after to"})
		return
	}

	records, err := h.svc.ListByHabit(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, records)
}
