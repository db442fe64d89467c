package domain

import (
	"context"
	"time"
)

type CompletionLogRepository interface {
	// Upsert writes the record for its (habit, date) pair, replacing any
	// existing record for that day.
	Upsert(ctx context.Context, record *CompletionRecord) error

	// GetByHabitAndDate retrieves the record for a habit on a calendar
	// date. An absent record returns (nil, nil): "no record" is a valid
	// answer, distinct from a storage failure.
	GetByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*CompletionRecord, error)

	// ListByHabitAndRange retrieves a habit's records with date in
	// [from, to], both inclusive, ordered by date ascending.
	ListByHabitAndRange(ctx context.Context, habitID string, from, to time.Time) ([]*CompletionRecord, error)

	// ListByDateRange retrieves every habit's records with date in
	// [from, to], both inclusive.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*CompletionRecord, error)

	// DeleteByHabitID removes all records for a habit. Used when the
	// habit itself is deleted; deleting a habit with no records is not
	// an error.
	DeleteByHabitID(ctx context.Context, habitID string) error
}
