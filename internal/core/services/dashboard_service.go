package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

type DashboardService struct {
	habitRepo     domain.HabitRepository
	completionLog domain.CompletionLogRepository
	progress      *ProgressService
}

func NewDashboardService(habitRepo domain.HabitRepository, completionLog domain.CompletionLogRepository, progress *ProgressService) *DashboardService {
	return &DashboardService{
		habitRepo:     habitRepo,
		completionLog: completionLog,
		progress:      progress,
	}
}

// Dashboard computes the cross-habit summary as of a given date. The
// date is injectable so callers (and tests) control what "today" means;
// handlers pass time.Now().
//
// WeeklyAverage is the mean, over the 7 calendar days ending at asOf,
// of the fraction of habits completed each day, as a whole-number
// percentage. MonthlyProgress is the mean of the habits' completion
// rates for asOf's calendar month, one decimal.
func (s *DashboardService) Dashboard(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error) {
	today := domain.NormalizeDate(asOf)

	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	summary := &domain.DashboardSummary{
		TotalHabits: len(habits),
		Stats:       make(map[string]int),
	}

	for _, h := range habits {
		summary.Stats[h.Category]++
	}

	if len(habits) == 0 {
		return summary, nil
	}

	weekStart := today.AddDate(0, 0, -6)
	records, err := s.completionLog.ListByDateRange(ctx, weekStart, today)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion log: %w", err)
	}

	// completed[dateKey] -> set of habit IDs completed that day
	completed := make(map[string]map[string]bool)
	for _, r := range records {
		if !r.Completed {
			continue
		}
		key := domain.DateKey(r.Date)
		if completed[key] == nil {
			completed[key] = make(map[string]bool)
		}
		completed[key][r.HabitID] = true
	}

	summary.CompletedToday = len(completed[domain.DateKey(today)])

	var weekSum float64
	for day := weekStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		weekSum += float64(len(completed[domain.DateKey(day)])) / float64(len(habits))
	}
	summary.WeeklyAverage = clampRate(math.Round(weekSum / 7 * 100))

	var monthSum float64
	for _, h := range habits {
		report, err := s.progress.MonthlyProgress(ctx, h.ID, today.Year(), today.Month())
		if err != nil {
			return nil, err
		}
		monthSum += report.CompletionRate
	}
	summary.MonthlyProgress = clampRate(math.Round(monthSum/float64(len(habits))*10) / 10)

	return summary, nil
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
