package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
	"github.com/Im044/habit-tracker-portal/internal/core/workers"
)

type progressComputer interface {
	MonthlyProgress(ctx context.Context, habitID string, year int, month time.Month) (*domain.ProgressReport, error)
}

// CachedProgressService serves current-month reports from the entries
// the report worker keeps warm and falls back to a fresh computation
// on a miss. Only the worker writes these keys, so a report can lag a
// habit deletion by at most its TTL. Past months are never warmed and
// always go to the wrapped service.
type CachedProgressService struct {
	next  progressComputer
	cache *redis.Client
}

func NewCachedProgressService(next progressComputer, cache *redis.Client) *CachedProgressService {
	return &CachedProgressService{
		next:  next,
		cache: cache,
	}
}

func (s *CachedProgressService) MonthlyProgress(ctx context.Context, habitID string, year int, month time.Month) (*domain.ProgressReport, error) {
	now := time.Now().UTC()
	if year != now.Year() || month != now.Month() {
		return s.next.MonthlyProgress(ctx, habitID, year, month)
	}

	key := workers.ReportCacheKey(habitID, year, month)
	val, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		var report domain.ProgressReport
		if err := json.Unmarshal([]byte(val), &report); err == nil {
			return &report, nil
		}

		log.Printf("[CACHE] Corrupted report entry, cleaning up %s", key)
		s.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	return s.next.MonthlyProgress(ctx, habitID, year, month)
}
