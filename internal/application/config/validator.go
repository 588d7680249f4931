package config

import (
	"fmt"
	"time"

	"github.com/doeshing/passgen-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validatePreferences(cfg.Preferences, cfg.Generator); err != nil {
		return err
	}
	if err := validateGenerator(cfg.Generator); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if _, err := BadgeDuration(cfg.Clipboard); err != nil {
		return err
	}
	return nil
}

// BadgeDuration parses clipboard.badge_duration, defaulting to one second.
func BadgeDuration(settings domain.ClipboardSettings) (time.Duration, error) {
	if settings.BadgeDuration == "" {
		return domain.DefaultBadgeDuration, nil
	}
	d, err := time.ParseDuration(settings.BadgeDuration)
	if err != nil {
		return 0, fmt.Errorf("clipboard.badge_duration invalid: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("clipboard.badge_duration must be > 0")
	}
	return d, nil
}

func validatePreferences(prefs domain.Preferences, gen domain.GeneratorSettings) error {
	if prefs.DefaultLength < 0 {
		return fmt.Errorf("preferences.default_length must be >= 0")
	}
	if gen.MaxLength > 0 && prefs.DefaultLength > gen.MaxLength {
		return fmt.Errorf("preferences.default_length %d exceeds generator.max_length %d", prefs.DefaultLength, gen.MaxLength)
	}
	if !domain.Tier(prefs.DefaultTier).Valid() {
		return fmt.Errorf("preferences.default_tier must be between %d and %d, got %d", domain.MinTier, domain.MaxTier, prefs.DefaultTier)
	}
	return nil
}

func validateGenerator(gen domain.GeneratorSettings) error {
	switch gen.Strategy {
	case domain.StrategyClassic, domain.StrategyDirect:
	default:
		return fmt.Errorf("generator.strategy must be classic|direct, got %s", gen.Strategy)
	}
	if gen.MaxLength <= 0 {
		return fmt.Errorf("generator.max_length must be > 0")
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch storage.Backend {
	case domain.StorageSQLite, domain.StorageFile, domain.StorageMemory:
		return nil
	default:
		return fmt.Errorf("storage.backend must be sqlite|file|memory, got %s", storage.Backend)
	}
}

func validateHistory(history domain.HistorySettings) error {
	if history.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must be >= 0")
	}
	return nil
}
