package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carblens/backend/internal/store"
	"github.com/carblens/backend/internal/types"
)

// SettingsService persists the energy-unit preference and the model API key,
// each under its own store key.
type SettingsService struct {
	store store.Store
}

// NewSettingsService creates a SettingsService on top of the given store.
func NewSettingsService(s store.Store) *SettingsService {
	return &SettingsService{store: s}
}

// GetEnergyUnit returns the stored display unit, defaulting to kcal when the
// key is absent, unreadable, or holds an unrecognized value.
func (s *SettingsService) GetEnergyUnit(ctx context.Context) types.EnergyUnit {
	raw, err := s.store.Get(ctx, store.KeyEnergyUnit)
	if err != nil {
		return types.EnergyKcal
	}
	unit := types.EnergyUnit(raw)
	if !unit.Valid() {
		return types.EnergyKcal
	}
	return unit
}

// SaveEnergyUnit persists the display unit preference.
func (s *SettingsService) SaveEnergyUnit(ctx context.Context, unit types.EnergyUnit) error {
	if !unit.Valid() {
		return fmt.Errorf("unsupported energy unit: %q", unit)
	}
	if err := s.store.Set(ctx, store.KeyEnergyUnit, string(unit)); err != nil {
		return &PersistenceError{Op: "save energy unit", Err: err}
	}
	return nil
}

// GetAPIKey returns the stored model credential, or empty when none is set.
func (s *SettingsService) GetAPIKey(ctx context.Context) string {
	key, err := s.store.Get(ctx, store.KeyAPIKey)
	if err != nil {
		return ""
	}
	return key
}

// SaveAPIKey persists the model credential.
func (s *SettingsService) SaveAPIKey(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("API key must not be empty")
	}
	if err := s.store.Set(ctx, store.KeyAPIKey, key); err != nil {
		return &PersistenceError{Op: "save API key", Err: err}
	}
	return nil
}

// ResetAPIKey removes the stored credential.
func (s *SettingsService) ResetAPIKey(ctx context.Context) error {
	if err := s.store.Remove(ctx, store.KeyAPIKey); err != nil {
		return &PersistenceError{Op: "reset API key", Err: err}
	}
	return nil
}
