package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitCategoryEmpty = errors.New("habit category cannot be empty")
	ErrInvalidFrequency   = errors.New("invalid frequency (must be daily, weekly, or monthly)")
	ErrInvalidGoal        = errors.New("goal must be between 0 and 100")
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	MaxNameLen       = 100
)

type Habit struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Frequency string    `json:"frequency" db:"frequency"`
	Goal      float64   `json:"goal" db:"goal"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HabitUpdate carries a partial update: nil fields keep their current value.
type HabitUpdate struct {
	Name      *string
	Category  *string
	Frequency *string
	Goal      *float64
}

func validateFields(name, category, frequency string, goal float64) error {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return ErrHabitNameEmpty
	}
	if len(trimmedName) > MaxNameLen {
		return ErrHabitNameTooLong
	}

	if strings.TrimSpace(category) == "" {
		return ErrHabitCategoryEmpty
	}

	// Weekly and monthly are accepted and stored but only daily habits
	// currently affect aggregation.
	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return ErrInvalidFrequency
	}

	if goal < 0 || goal > 100 {
		return ErrInvalidGoal
	}

	return nil
}

func NewHabit(name, category, frequency string, goal float64) (*Habit, error) {
	if frequency == "" {
		frequency = FrequencyDaily
	}

	if err := validateFields(name, category, frequency, goal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Category:  strings.TrimSpace(category),
		Frequency: frequency,
		Goal:      goal,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply merges a partial update into the habit. The merged state is
// validated before anything is written, so a failed update leaves the
// habit untouched. UpdatedAt is bumped on success.
func (h *Habit) Apply(update HabitUpdate) error {
	name := h.Name
	if update.Name != nil {
		name = *update.Name
	}

	category := h.Category
	if update.Category != nil {
		category = *update.Category
	}

	frequency := h.Frequency
	if update.Frequency != nil {
		frequency = *update.Frequency
	}

	goal := h.Goal
	if update.Goal != nil {
		goal = *update.Goal
	}

	if err := validateFields(name, category, frequency, goal); err != nil {
		return err
	}

	h.Name = strings.TrimSpace(name)
	h.Category = strings.TrimSpace(category)
	h.Frequency = frequency
	h.Goal = goal
	h.UpdatedAt = time.Now().UTC()

	return nil
}
