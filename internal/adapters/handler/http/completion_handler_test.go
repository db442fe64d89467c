package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

func TestCompletionHandler_Set(t *testing.T) {
	t.Run("Success: Marks a day completed", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)

		w := env.do(t, "PUT", "/api/habits/"+habit.ID+"/completions/2026-01-10", gin.H{"completed": true})

		assert.Equal(t, http.StatusOK, w.Code)

		var record domain.CompletionRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, habit.ID, record.HabitID)
		assert.True(t, record.Completed)
	})

	t.Run("Success: Unmarking a day", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)
		path := "/api/habits/" + habit.ID + "/completions/2026-01-10"

		require.Equal(t, http.StatusOK, env.do(t, "PUT", path, gin.H{"completed": true}).Code)

		w := env.do(t, "PUT", path, gin.H{"completed": false})
		assert.Equal(t, http.StatusOK, w.Code)

		var record domain.CompletionRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.False(t, record.Completed)
	})

	t.Run("Fail: 400 on bad date", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)

		w := env.do(t, "PUT", "/api/habits/"+habit.ID+"/completions/10-01-2026", gin.H{"completed": true})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 on missing completed field", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)

		w := env.do(t, "PUT", "/api/habits/"+habit.ID+"/completions/2026-01-10", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 404 on unknown habit", func(t *testing.T) {
		env := setupRouter()

		w := env.do(t, "PUT", "/api/habits/ghost/completions/2026-01-10", gin.H{"completed": true})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompletionHandler_Get(t *testing.T) {
	t.Run("Success: Returns a recorded day", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)
		path := "/api/habits/" + habit.ID + "/completions/2026-01-10"

		require.Equal(t, http.StatusOK, env.do(t, "PUT", path, gin.H{"completed": true}).Code)

		w := env.do(t, "GET", path, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var record domain.CompletionRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, habit.ID, record.HabitID)
		assert.True(t, record.Completed)
	})

	t.Run("Success: Unrecorded day reads as not completed", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)

		w := env.do(t, "GET", "/api/habits/"+habit.ID+"/completions/2026-01-10", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			HabitID   string `json:"habit_id"`
			Completed bool   `json:"completed"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, habit.ID, body.HabitID)
		assert.False(t, body.Completed)
	})

	t.Run("Fail: 400 on bad date", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Hydrate", "health", 90)

		w := env.do(t, "GET", "/api/habits/"+habit.ID+"/completions/10-01-2026", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 404 on unknown habit", func(t *testing.T) {
		env := setupRouter()

		w := env.do(t, "GET", "/api/habits/ghost/completions/2026-01-10", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompletionHandler_List(t *testing.T) {
	t.Run("Success: Lists records in range", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Study", "learning", 80)

		for day := 1; day <= 5; day++ {
			path := fmt.Sprintf("/api/habits/%s/completions/2026-01-%02d", habit.ID, day)
			require.Equal(t, http.StatusOK, env.do(t, "PUT", path, gin.H{"completed": true}).Code)
		}

		w := env.do(t, "GET", "/api/habits/"+habit.ID+"/completions?from=2026-01-02&to=2026-01-04", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var records []domain.CompletionRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
		assert.Len(t, records, 3)
	})

	t.Run("Fail: 400 when from is after to", func(t *testing.T) {
		env := setupRouter()
		habit := env.createHabit(t, "Study", "learning", 80)

		w := env.do(t, "GET", "/api/habits/"+habit.ID+"/completions?from=2026-01-10&to=2026-01-01", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 404 on unknown habit", func(t *testing.T) {
		env := setupRouter()

		w := env.do(t, "GET", "/api/habits/ghost/completions?from=2026-01-01&to=2026-01-31", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
