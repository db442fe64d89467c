package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
	"github.com/Im044/habit-tracker-portal/internal/core/services"
)

func newDashboardService(habitRepo *MockHabitRepo, logRepo *MockCompletionLogRepo) *services.DashboardService {
	progress := services.NewProgressService(habitRepo, logRepo)
	return services.NewDashboardService(habitRepo, logRepo, progress)
}

func sixHabits() []*domain.Habit {
	return []*domain.Habit{
		{ID: "h1", Name: "Wake up at 6", Category: "health", Frequency: "daily", Goal: 80},
		{ID: "h2", Name: "Cold shower", Category: "health", Frequency: "daily", Goal: 75},
		{ID: "h3", Name: "Hydrate", Category: "health", Frequency: "daily", Goal: 90},
		{ID: "h4", Name: "Stretching", Category: "exercise", Frequency: "daily", Goal: 85},
		{ID: "h5", Name: "Study", Category: "learning", Frequency: "daily", Goal: 80},
		{ID: "h6", Name: "Exercise", Category: "exercise", Frequency: "daily", Goal: 70},
	}
}

func TestDashboardService_Dashboard(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	today := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Totals, today count and category stats", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		logRepo := new(MockCompletionLogRepo)
		svc := newDashboardService(habitRepo, logRepo)

		habits := sixHabits()
		habitRepo.On("List", ctx).Return(habits, nil)
		for _, h := range habits {
			habitRepo.On("GetByID", ctx, h.ID).Return(h, nil)
		}

		// 4 of 6 habits completed today, nothing else in the week.
		weekRecords := []*domain.CompletionRecord{
			{HabitID: "h1", Date: today, Completed: true},
			{HabitID: "h2", Date: today, Completed: true},
			{HabitID: "h3", Date: today, Completed: true},
			{HabitID: "h4", Date: today, Completed: true},
			{HabitID: "h5", Date: today, Completed: false},
		}
		logRepo.On("ListByDateRange", ctx, mock.Anything, mock.Anything).Return(weekRecords, nil)
		for _, h := range habits {
			var own []*domain.CompletionRecord
			for _, r := range weekRecords {
				if r.HabitID == h.ID {
					own = append(own, r)
				}
			}
			logRepo.On("ListByHabitAndRange", ctx, h.ID, mock.Anything, mock.Anything).Return(own, nil)
		}

		summary, err := svc.Dashboard(ctx, asOf)

		require.NoError(t, err)
		require.NotNil(t, summary)

		assert.Equal(t, 6, summary.TotalHabits)
		assert.Equal(t, 4, summary.CompletedToday)
		assert.Equal(t, map[string]int{"health": 3, "exercise": 2, "learning": 1}, summary.Stats)

		// One day with 4/6 completed over a 7-day window.
		assert.Equal(t, 10.0, summary.WeeklyAverage)

		// Four habits at 1/31 days (3.2 each), two at 0: mean is 2.1.
		assert.Equal(t, 2.1, summary.MonthlyProgress)

		sum := 0
		for _, count := range summary.Stats {
			sum += count
		}
		assert.Equal(t, summary.TotalHabits, sum, "stats values must sum to totalHabits")
		assert.LessOrEqual(t, summary.CompletedToday, summary.TotalHabits)
	})

	t.Run("Edge case: Empty store returns zeroed summary", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		logRepo := new(MockCompletionLogRepo)
		svc := newDashboardService(habitRepo, logRepo)

		habitRepo.On("List", ctx).Return([]*domain.Habit{}, nil)

		summary, err := svc.Dashboard(ctx, asOf)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.TotalHabits)
		assert.Equal(t, 0, summary.CompletedToday)
		assert.Equal(t, 0.0, summary.WeeklyAverage)
		assert.Equal(t, 0.0, summary.MonthlyProgress)
		assert.Empty(t, summary.Stats)
		logRepo.AssertNotCalled(t, "ListByDateRange")
	})

	t.Run("Rates stay within [0,100] under full completion", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		logRepo := new(MockCompletionLogRepo)
		svc := newDashboardService(habitRepo, logRepo)

		habit := &domain.Habit{ID: "h1", Name: "Hydrate", Category: "health", Frequency: "daily", Goal: 90}
		habitRepo.On("List", ctx).Return([]*domain.Habit{habit}, nil)
		habitRepo.On("GetByID", ctx, "h1").Return(habit, nil)

		var week []*domain.CompletionRecord
		for i := 0; i < 7; i++ {
			week = append(week, &domain.CompletionRecord{
				HabitID:   "h1",
				Date:      today.AddDate(0, 0, -i),
				Completed: true,
			})
		}
		logRepo.On("ListByDateRange", ctx, mock.Anything, mock.Anything).Return(week, nil)

		var month []*domain.CompletionRecord
		for day := 1; day <= 31; day++ {
			month = append(month, &domain.CompletionRecord{
				HabitID:   "h1",
				Date:      time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
				Completed: true,
			})
		}
		logRepo.On("ListByHabitAndRange", ctx, "h1", mock.Anything, mock.Anything).Return(month, nil)

		summary, err := svc.Dashboard(ctx, asOf)

		require.NoError(t, err)
		assert.Equal(t, 100.0, summary.WeeklyAverage)
		assert.Equal(t, 100.0, summary.MonthlyProgress)
	})

	t.Run("Idempotence: Unchanged data yields identical summaries", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		logRepo := new(MockCompletionLogRepo)
		svc := newDashboardService(habitRepo, logRepo)

		habits := sixHabits()
		habitRepo.On("List", ctx).Return(habits, nil)
		for _, h := range habits {
			habitRepo.On("GetByID", ctx, h.ID).Return(h, nil)
		}
		logRepo.On("ListByDateRange", ctx, mock.Anything, mock.Anything).Return([]*domain.CompletionRecord{}, nil)
		logRepo.On("ListByHabitAndRange", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return([]*domain.CompletionRecord{}, nil)

		first, err := svc.Dashboard(ctx, asOf)
		require.NoError(t, err)
		second, err := svc.Dashboard(ctx, asOf)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Fail: Habit store error propagates", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		logRepo := new(MockCompletionLogRepo)
		svc := newDashboardService(habitRepo, logRepo)

		dbErr := errors.New("db connection lost")
		habitRepo.On("List", ctx).Return(nil, dbErr)

		summary, err := svc.Dashboard(ctx, asOf)

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, summary)
	})

	t.Run("Fail: Completion log error propagates", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		logRepo := new(MockCompletionLogRepo)
		svc := newDashboardService(habitRepo, logRepo)

		habitRepo.On("List", ctx).Return(sixHabits(), nil)

		dbErr := errors.New("query timeout")
		logRepo.On("ListByDateRange", ctx, mock.Anything, mock.Anything).Return(nil, dbErr)

		summary, err := svc.Dashboard(ctx, asOf)

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, summary)
	})
}
