package store

import (
	"context"
	"errors"
)

// Keys for the three values the application persists.
const (
	KeyMealLogs   = "meal_logs"
	KeyAPIKey     = "gemini_api_key"
	KeyEnergyUnit = "energy_unit"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("store: key not found")

// Store is a durable string-keyed key-value store. Implementations must make
// a single-key Set atomic: a concurrent reader sees either the previous or
// the new value, never a partial write.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
