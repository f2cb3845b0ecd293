package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"palmroute/internal/ledger"
	"palmroute/internal/models"
	"palmroute/internal/repository"
)

const (
	SettingDifficulty = "sim.difficulty"

	FeatureBalanceSnapshot = "feature.balance_snapshot"
)

type SettingsService struct {
	Repo repository.SettingsStore
}

// EnsureDefaults seeds the difficulty tier and feature switches on first
// start. Existing values are never overwritten.
func (s *SettingsService) EnsureDefaults(ctx context.Context, defaultDifficulty string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if !ledger.KnownDifficulty(defaultDifficulty) {
		defaultDifficulty = ledger.DefaultDifficulty
	}
	existing, err := s.Repo.GetSettingByKey(ctx, SettingDifficulty)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if existing == nil {
		raw, _ := json.Marshal(defaultDifficulty)
		item := &models.Setting{
			Key:         SettingDifficulty,
			Value:       datatypes.JSON(raw),
			Description: "simulation difficulty tier",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Repo.UpsertSetting(ctx, item); err != nil {
			return err
		}
	}

	for key, enabled := range map[string]bool{
		FeatureBalanceSnapshot: true,
	} {
		existing, err := s.Repo.GetSettingByKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		raw, _ := json.Marshal(enabled)
		item := &models.Setting{
			Key:         key,
			Value:       datatypes.JSON(raw),
			Description: "feature switch",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Repo.UpsertSetting(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// Difficulty returns the active difficulty tier name. Missing or malformed
// settings fall back to the default tier; the calculator applies the same
// fallback for unknown names.
func (s *SettingsService) Difficulty(ctx context.Context) string {
	if s == nil || s.Repo == nil {
		return ledger.DefaultDifficulty
	}
	item, err := s.Repo.GetSettingByKey(ctx, SettingDifficulty)
	if err != nil || item == nil || len(item.Value) == 0 {
		return ledger.DefaultDifficulty
	}
	var name string
	if err := json.Unmarshal(item.Value, &name); err != nil || strings.TrimSpace(name) == "" {
		return ledger.DefaultDifficulty
	}
	return strings.TrimSpace(name)
}

func (s *SettingsService) SetDifficulty(ctx context.Context, name string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if !ledger.KnownDifficulty(name) {
		return fmt.Errorf("unknown difficulty %q", name)
	}
	raw, _ := json.Marshal(name)
	item := &models.Setting{
		Key:         SettingDifficulty,
		Value:       datatypes.JSON(raw),
		Description: "simulation difficulty tier",
		UpdatedAt:   time.Now().UTC(),
	}
	return s.Repo.UpsertSetting(ctx, item)
}

func (s *SettingsService) IsEnabled(ctx context.Context, key string, fallback bool) bool {
	if s == nil || s.Repo == nil {
		return fallback
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	item, err := s.Repo.GetSettingByKey(ctx, key)
	if err != nil || item == nil || len(item.Value) == 0 {
		return fallback
	}
	var enabled bool
	if err := json.Unmarshal(item.Value, &enabled); err != nil {
		return fallback
	}
	return enabled
}

func (s *SettingsService) SetEnabled(ctx context.Context, key string, enabled bool) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	raw, _ := json.Marshal(enabled)
	item := &models.Setting{
		Key:         key,
		Value:       datatypes.JSON(raw),
		Description: "feature switch",
		UpdatedAt:   time.Now().UTC(),
	}
	return s.Repo.UpsertSetting(ctx, item)
}
