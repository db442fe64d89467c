package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

type ProgressComputer interface {
	MonthlyProgress(ctx context.Context, habitID string, year int, month time.Month) (*domain.ProgressReport, error)
}

type WarmJob struct {
	HabitID string
}

// ReportWorker pre-warms the current-month progress report for a habit
// after its completion log changes, so the front end's chart reads hit
// a fresh cache entry instead of recomputing on every poll.
type ReportWorker struct {
	progress ProgressComputer
	cache    *redis.Client
	ttl      time.Duration
	jobs     chan WarmJob
}

func NewReportWorker(progress ProgressComputer, cache *redis.Client, ttl time.Duration) *ReportWorker {
	return &ReportWorker{
		progress: progress,
		cache:    cache,
		ttl:      ttl,
		jobs:     make(chan WarmJob, 100),
	}
}

func ReportCacheKey(habitID string, year int, month time.Month) string {
	return fmt.Sprintf("report:%s:%04d-%02d", habitID, year, int(month))
}

func (w *ReportWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Report worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Report worker shutting down...")
				return
			}
		}
	}()
}

func (w *ReportWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- WarmJob{HabitID: habitID}:
	default:
		log.Printf("Report worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *ReportWorker) processJob(ctx context.Context, job WarmJob) {
	now := time.Now().UTC()

	report, err := w.progress.MonthlyProgress(ctx, job.HabitID, now.Year(), now.Month())
	if err != nil {
		log.Printf("Worker error computing report for %s: %v", job.HabitID, err)
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("Worker error encoding report for %s: %v", job.HabitID, err)
		return
	}

	key := ReportCacheKey(job.HabitID, now.Year(), now.Month())
	if err := w.cache.Set(ctx, key, data, w.ttl).Err(); err != nil {
		log.Printf("Worker failed to cache report for %s: %v", job.HabitID, err)
	}
}
