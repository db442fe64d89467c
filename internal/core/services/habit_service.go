package services

import (
	"context"
	"fmt"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

type HabitService struct {
	repo          domain.HabitRepository
	completionLog domain.CompletionLogRepository
}

func NewHabitService(repo domain.HabitRepository, completionLog domain.CompletionLogRepository) *HabitService {
	return &HabitService{
		repo:          repo,
		completionLog: completionLog,
	}
}

type CreateHabitInput struct {
	Name      string
	Category  string
	Frequency string
	Goal      float64
}

type UpdateHabitInput struct {
	ID        string
	Name      *string
	Category  *string
	Frequency *string
	Goal      *float64
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Category, input.Frequency, input.Goal)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to persist habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	return s.repo.List(ctx)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	err = habit.Apply(domain.HabitUpdate{
		Name:      input.Name,
		Category:  input.Category,
		Frequency: input.Frequency,
		Goal:      input.Goal,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// Delete removes the habit and cascades to its completion records.
func (s *HabitService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.completionLog.DeleteByHabitID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete completion records for habit %s: %w", id, err)
	}

	return nil
}
