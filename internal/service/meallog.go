package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/carblens/backend/internal/store"
	"github.com/carblens/backend/internal/types"
)

// MealLogService provides durable CRUD over the meal-log collection. The
// whole collection lives under a single store key as one JSON blob, newest
// log first, and every mutation reads, rewrites, and stores it whole.
//
// Reads are lenient: a missing key or an undecodable blob yields an empty
// collection (logged, never surfaced). Writes are strict: a failed store
// write propagates as *PersistenceError. There is no cross-operation
// locking; concurrent mutations are last-writer-wins on the collection.
type MealLogService struct {
	store store.Store
}

// NewMealLogService creates a MealLogService on top of the given store.
func NewMealLogService(s store.Store) *MealLogService {
	return &MealLogService{store: s}
}

// SaveMeal creates a meal log from the given items, with totals computed as
// the exact sum over the items' carbs and calories, and prepends it to the
// persisted collection. Returns the created log.
func (s *MealLogService) SaveMeal(ctx context.Context, items []types.FoodItem) (types.MealLog, error) {
	if len(items) == 0 {
		return types.MealLog{}, ErrNoItems
	}

	var totalCarbs, totalCalories float64
	for _, item := range items {
		totalCarbs += item.Carbs
		totalCalories += item.Calories
	}

	newLog := types.MealLog{
		ID:            uuid.New().String(),
		Date:          time.Now().UTC(),
		Items:         items,
		TotalCarbs:    totalCarbs,
		TotalCalories: totalCalories,
	}

	logs := s.GetMealLogs(ctx)
	updated := append([]types.MealLog{newLog}, logs...)

	if err := s.writeLogs(ctx, updated); err != nil {
		return types.MealLog{}, err
	}
	return newLog, nil
}

// GetMealLogs returns the persisted collection, newest first. An absent key,
// a failed read, or an undecodable blob all yield an empty slice; the
// failure is logged so the degradation stays visible to operators.
func (s *MealLogService) GetMealLogs(ctx context.Context) []types.MealLog {
	raw, err := s.store.Get(ctx, store.KeyMealLogs)
	if errors.Is(err, store.ErrNotFound) {
		return []types.MealLog{}
	}
	if err != nil {
		log.Printf("Failed to read meal logs, treating as empty: %v", err)
		return []types.MealLog{}
	}

	var logs []types.MealLog
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		log.Printf("Failed to decode meal logs, treating as empty: %v", err)
		return []types.MealLog{}
	}
	return logs
}

// DeleteMealLog removes the log whose id matches exactly, preserving the
// relative order of the rest. An unknown id is a no-op, not an error.
func (s *MealLogService) DeleteMealLog(ctx context.Context, id string) error {
	logs := s.GetMealLogs(ctx)

	filtered := make([]types.MealLog, 0, len(logs))
	for _, l := range logs {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}

	return s.writeLogs(ctx, filtered)
}

// ClearLogs removes the collection key entirely.
func (s *MealLogService) ClearLogs(ctx context.Context) error {
	if err := s.store.Remove(ctx, store.KeyMealLogs); err != nil {
		return &PersistenceError{Op: "clear meal logs", Err: err}
	}
	return nil
}

func (s *MealLogService) writeLogs(ctx context.Context, logs []types.MealLog) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return &PersistenceError{Op: "encode meal logs", Err: err}
	}
	if err := s.store.Set(ctx, store.KeyMealLogs, string(data)); err != nil {
		return &PersistenceError{Op: "save meal logs", Err: err}
	}
	return nil
}
