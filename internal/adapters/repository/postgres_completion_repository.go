package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Upsert(ctx context.Context, record *domain.CompletionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO completion_records (id, habit_id, date, completed, created_at, updated_at)
		VALUES (:id, :habit_id, :date, :completed, :created_at, :updated_at)
		ON CONFLICT (habit_id, date)
		DO UPDATE SET completed = EXCLUDED.completed, updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("failed to upsert completion record: %w", err)
	}

	return nil
}

func (r *PostgresCompletionRepository) GetByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*domain.CompletionRecord, error) {
	var record domain.CompletionRecord
	query := `SELECT * FROM completion_records WHERE habit_id = $1 AND date = $2`

	err := r.db.GetContext(ctx, &record, query, habitID, domain.NormalizeDate(date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Absent is a valid answer, not a failure.
			return nil, nil
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &record, nil
}

func (r *PostgresCompletionRepository) ListByHabitAndRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	records := []*domain.CompletionRecord{}

	query := `
		SELECT * FROM completion_records
		WHERE habit_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	err := r.db.SelectContext(ctx, &records, query, habitID, domain.NormalizeDate(from), domain.NormalizeDate(to))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return records, nil
}

func (r *PostgresCompletionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.CompletionRecord, error) {
	records := []*domain.CompletionRecord{}

	query := `
		SELECT * FROM completion_records
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`

	err := r.db.SelectContext(ctx, &records, query, domain.NormalizeDate(from), domain.NormalizeDate(to))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return records, nil
}

func (r *PostgresCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	query := `DELETE FROM completion_records WHERE habit_id = $1`

	if _, err := r.db.ExecContext(ctx, query, habitID); err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	return nil
}
