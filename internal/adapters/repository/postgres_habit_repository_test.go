package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "habits_user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "secret"
	}
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "habits_db"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE completion_records, habits CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func TestPostgresHabitRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)

	repo := NewPostgresHabitRepository(db)
	ctx := context.Background()

	habit, err := domain.NewHabit("Wake up at 6", "health", "daily", 80)
	require.NoError(t, err)

	t.Run("Create and GetByID", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, habit))

		got, err := repo.GetByID(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, habit.Name, got.Name)
		assert.Equal(t, habit.Category, got.Category)
		assert.Equal(t, habit.Goal, got.Goal)
	})

	t.Run("List includes created habit", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, habit.ID, list[0].ID)
	})

	t.Run("Update persists changes", func(t *testing.T) {
		require.NoError(t, habit.Apply(domain.HabitUpdate{Goal: ptrFloat(95)}))
		require.NoError(t, repo.Update(ctx, habit))

		got, err := repo.GetByID(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, 95.0, got.Goal)
	})

	t.Run("Update on missing habit returns NotFound", func(t *testing.T) {
		missing := *habit
		missing.ID = "00000000-0000-0000-0000-000000000000"
		missing.UpdatedAt = time.Now().UTC()

		assert.ErrorIs(t, repo.Update(ctx, &missing), domain.ErrHabitNotFound)
	})

	t.Run("Delete removes the habit", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, habit.ID))

		_, err := repo.GetByID(ctx, habit.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, habit.ID), domain.ErrHabitNotFound)
	})
}

func ptrFloat(v float64) *float64 {
	return &v
}
