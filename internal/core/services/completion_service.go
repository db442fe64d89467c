package services

import (
	"context"
	"time"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
	"github.com/Im044/habit-tracker-portal/internal/core/workers"
)

type CompletionService struct {
	repo      domain.CompletionLogRepository
	habitRepo domain.HabitRepository
	worker    *workers.ReportWorker
}

func NewCompletionService(repo domain.CompletionLogRepository, habitRepo domain.HabitRepository, worker *workers.ReportWorker) *CompletionService {
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
	}
}

type SetCompletionInput struct {
	HabitID   string
	Date      time.Time
	Completed bool
}

// Set records whether a habit was completed on a calendar date,
// replacing any earlier record for that day.
func (s *CompletionService) Set(ctx context.Context, input SetCompletionInput) (*domain.CompletionRecord, error) {
	if _, err := s.habitRepo.GetByID(ctx, input.HabitID); err != nil {
		return nil, err
	}

	record := domain.NewCompletionRecord(input.HabitID, input.Date, input.Completed)
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	if s.worker != nil {
		s.worker.Enqueue(record.HabitID)
	}

	return record, nil
}

// Get reports the completion state of a habit on a calendar date. An
// absent record comes back as (nil, nil); callers render that as not
// completed, the same reading the monthly report applies.
func (s *CompletionService) Get(ctx context.Context, habitID string, date time.Time) (*domain.CompletionRecord, error) {
	if _, err := s.habitRepo.GetByID(ctx, habitID); err != nil {
		return nil, err
	}

	return s.repo.GetByHabitAndDate(ctx, habitID, domain.NormalizeDate(date))
}

func (s *CompletionService) ListByHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	if _, err := s.habitRepo.GetByID(ctx, habitID); err != nil {
		return nil, err
	}

	return s.repo.ListByHabitAndRange(ctx, habitID, domain.NormalizeDate(from), domain.NormalizeDate(to))
}
