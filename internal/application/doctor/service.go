package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Store          ports.KeyValueStore
	History        ports.HistoryRepository
	Clipboard      ports.Clipboard
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	if s.ConfigProvider == nil {
		return domain.HealthReport{}, errors.New("config provider not configured")
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", fmt.Sprintf("length %d, tier %d, %s strategy",
			cfg.Preferences.DefaultLength, cfg.Preferences.DefaultTier, cfg.Generator.Strategy)))
	}

	checks = append(checks, storageCheck(cfg.Storage.Backend, s.Store))
	checks = append(checks, s.historyCheck(ctx, cfg.History))
	checks = append(checks, clipboardCheck(cfg.Clipboard, s.Clipboard))

	return domain.HealthReport{Checks: checks}, nil
}

func storageCheck(configured domain.StorageBackend, store ports.KeyValueStore) domain.HealthCheck {
	if store == nil {
		return fail("Storage", "no storage opened")
	}
	described, isDescribed := store.(ports.DescribedStore)
	if !isDescribed {
		return ok("Storage", "custom store")
	}
	backend := described.Backend()
	location := described.Location()
	details := fmt.Sprintf("%s at %s", backend, location)
	if info, err := os.Stat(location); err == nil && !info.IsDir() {
		details = fmt.Sprintf("%s (%s)", details, humanize.Bytes(uint64(info.Size())))
	}
	if configured != "" && string(configured) != backend {
		return warn("Storage", fmt.Sprintf("configured %s, using %s", configured, details))
	}
	return ok("Storage", details)
}

func (s *Service) historyCheck(ctx context.Context, settings domain.HistorySettings) domain.HealthCheck {
	if !settings.Enabled {
		return warn("History", "recording disabled")
	}
	if s.History == nil {
		return fail("History", "history store not initialized")
	}
	list, err := s.History.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptHistory) {
			return fail("History", fmt.Sprintf("%v (run `passgen history clear` to repair)", err))
		}
		return fail("History", err.Error())
	}
	if degradable, isDegradable := s.History.(interface{ Degraded() error }); isDegradable {
		if err := degradable.Degraded(); err != nil {
			return warn("History", err.Error())
		}
	}
	limit := "unlimited"
	if settings.MaxEntries > 0 {
		limit = humanize.Comma(int64(settings.MaxEntries))
	}
	return ok("History", fmt.Sprintf("%s entries stored, limit %s", humanize.Comma(int64(len(list))), limit))
}

func clipboardCheck(settings domain.ClipboardSettings, clipboard ports.Clipboard) domain.HealthCheck {
	if !settings.Enabled {
		return warn("Clipboard", "disabled in config")
	}
	if clipboard == nil || !clipboard.Enabled() {
		return warn("Clipboard", "no clipboard tool available (pbcopy, xclip, wl-copy)")
	}
	return ok("Clipboard", "available")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
