package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

var (
	ErrInvalidMonth = errors.New("invalid month (must be 1-12)")
	ErrInvalidYear  = errors.New("invalid year (must be positive)")
)

type ProgressService struct {
	habitRepo     domain.HabitRepository
	completionLog domain.CompletionLogRepository
}

func NewProgressService(habitRepo domain.HabitRepository, completionLog domain.CompletionLogRepository) *ProgressService {
	return &ProgressService{
		habitRepo:     habitRepo,
		completionLog: completionLog,
	}
}

// MonthlyProgress builds the full calendar-month report for a habit.
// DailyData covers every day of the month in ascending order; days
// without a completion record count as not completed, including days
// still in the future when the month is the current one.
func (s *ProgressService) MonthlyProgress(ctx context.Context, habitID string, year int, month time.Month) (*domain.ProgressReport, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	if year < 1 {
		return nil, ErrInvalidYear
	}

	if _, err := s.habitRepo.GetByID(ctx, habitID); err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	totalDays := last.Day()

	records, err := s.completionLog.ListByHabitAndRange(ctx, habitID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion log: %w", err)
	}

	completedByDay := make(map[string]bool, len(records))
	for _, r := range records {
		completedByDay[domain.DateKey(r.Date)] = r.Completed
	}

	report := &domain.ProgressReport{
		HabitID:   habitID,
		Month:     first.Format("January 2006"),
		TotalDays: totalDays,
		DailyData: make([]domain.DailyCompletion, 0, totalDays),
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := domain.DateKey(day)
		completed := completedByDay[key]

		report.DailyData = append(report.DailyData, domain.DailyCompletion{
			Date:      key,
			Completed: completed,
		})

		if completed {
			report.CompletedDays++
		}
	}

	report.CompletionRate = roundRate(float64(report.CompletedDays) / float64(totalDays) * 100)

	return report, nil
}

// roundRate rounds a percentage to one decimal place and clamps it to
// [0, 100].
func roundRate(rate float64) float64 {
	rounded := math.Round(rate*10) / 10
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
