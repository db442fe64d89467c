package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Im044/habit-tracker-portal/internal/core/domain"
)

// In-memory implementations backing tests and dependency-free local
// runs. Values are copied in and out so a caller never observes
// concurrent mutation mid-read.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.store))
	for _, h := range r.store {
		clone := *h
		habits = append(habits, &clone)
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryCompletionRepository struct {
	// keyed by habitID, then ISO date
	store map[string]map[string]*domain.CompletionRecord

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]map[string]*domain.CompletionRecord),
	}
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, record *domain.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.DateKey(record.Date)
	if r.store[record.HabitID] == nil {
		r.store[record.HabitID] = make(map[string]*domain.CompletionRecord)
	}

	clone := *record
	r.store[record.HabitID][key] = &clone
	return nil
}

func (r *InMemoryCompletionRepository) GetByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.store[habitID][domain.DateKey(date)]
	if !ok {
		return nil, nil
	}

	clone := *record
	return &clone, nil
}

func (r *InMemoryCompletionRepository) ListByHabitAndRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.CompletionRecord
	for _, rec := range r.store[habitID] {
		if inRange(rec.Date, from, to) {
			clone := *rec
			records = append(records, &clone)
		}
	}

	sortByDate(records)
	return records, nil
}

func (r *InMemoryCompletionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.CompletionRecord
	for _, byDate := range r.store {
		for _, rec := range byDate {
			if inRange(rec.Date, from, to) {
				clone := *rec
				records = append(records, &clone)
			}
		}
	}

	sortByDate(records)
	return records, nil
}

func (r *InMemoryCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, habitID)
	return nil
}

func inRange(date, from, to time.Time) bool {
	d := domain.NormalizeDate(date)
	return !d.Before(domain.NormalizeDate(from)) && !d.After(domain.NormalizeDate(to))
}

func sortByDate(records []*domain.CompletionRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
