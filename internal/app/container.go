package app

import (
	"context"
	"errors"
	"fmt"

	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/application/doctor"
	"github.com/doeshing/passgen-go/internal/application/generator"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/config"
	"github.com/doeshing/passgen-go/internal/infrastructure/random"
	"github.com/doeshing/passgen-go/internal/infrastructure/storage"
	"github.com/doeshing/passgen-go/internal/pkg/logger"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Options controls container construction.
type Options struct {
	ConfigPath string
	Verbose    bool
	// Random overrides the default ChaCha8 source, mainly for tests.
	Random ports.RandomSource
	// Lenient builds the container even when the config file is unreadable or
	// invalid, falling back to defaults where needed. The config and doctor
	// commands use it so a broken file can still be inspected and repaired.
	Lenient bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Store          ports.KeyValueStore
	HistoryStore   *history.Store
	Generator      *generator.Generator
	Session        *session.Session
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, loadErr := cfgLoader.Load(ctx)
	if loadErr != nil && !opts.Lenient {
		return nil, loadErr
	}
	if loadErr != nil {
		cfg = config.DefaultConfig()
	}
	validateErr := configapp.Validate(cfg)
	if validateErr != nil && !opts.Lenient {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), validateErr)
	}

	log := logger.NewStd(opts.Verbose || cfg.Preferences.Verbose)
	if err := errors.Join(loadErr, validateErr); err != nil {
		log.Warn("configuration has problems, continuing with what could be loaded", map[string]interface{}{
			"config": cfgLoader.Path(),
			"error":  err.Error(),
		})
	}

	store, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil && !opts.Lenient {
		return nil, err
	}
	if err != nil {
		store = storage.NewMemoryStore()
	}
	historyStore := history.NewStore(store, storage.NewMemoryStore(), log, cfg.History.MaxEntries)

	source := opts.Random
	if source == nil {
		source = random.New()
	}
	gen := generator.New(source, cfg.Generator.Strategy, cfg.Generator.MaxLength)

	sess := session.New(gen, historyStore, nil, nil, log, session.Options{
		Length:         cfg.Preferences.DefaultLength,
		Tier:           domain.Tier(cfg.Preferences.DefaultTier),
		RecordHistory:  cfg.History.Enabled,
		CopyOnGenerate: cfg.Preferences.CopyOnGenerate,
	})

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Store:          store,
		History:        historyStore,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"backend": string(cfg.Storage.Backend),
	})

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Store:          store,
		HistoryStore:   historyStore,
		Generator:      gen,
		Session:        sess,
		DoctorService:  doctorService,
	}, nil
}

// AttachClipboard plugs the terminal adapters into the services that use them.
func (c *Container) AttachClipboard(clipboard ports.Clipboard, indicator ports.CopyIndicator) {
	if c.Session != nil {
		c.Session.Clipboard = clipboard
		c.Session.Indicator = indicator
	}
	if c.DoctorService != nil {
		c.DoctorService.Clipboard = clipboard
	}
}

// Close releases the storage handle.
func (c *Container) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
