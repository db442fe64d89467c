package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompletionRecord marks whether a habit was completed on a calendar
// date. At most one record exists per (habit, date) pair.
type CompletionRecord struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Date      time.Time `json:"date" db:"date"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewCompletionRecord(habitID string, date time.Time, completed bool) *CompletionRecord {
	now := time.Now().UTC()

	return &CompletionRecord{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Date:      NormalizeDate(date),
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *CompletionRecord) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if c.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// NormalizeDate truncates a timestamp to UTC midnight so records keyed
// by calendar date compare equal regardless of source time zone.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey renders a date as the ISO calendar day used for map keys and
// wire output.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
