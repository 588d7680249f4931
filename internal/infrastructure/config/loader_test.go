package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/domain"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Preferences.DefaultLength)
	assert.Equal(t, 3, cfg.Preferences.DefaultTier)
	assert.Equal(t, domain.StrategyClassic, cfg.Generator.Strategy)
	assert.Equal(t, domain.StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, "1s", cfg.Clipboard.BadgeDuration)
	assert.True(t, cfg.History.Enabled)
	require.NoError(t, configapp.Validate(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(cfg, again))
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  default_tier: 5\nstorage:\n  backend: file\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Preferences.DefaultTier)
	assert.Equal(t, domain.DefaultLength, cfg.Preferences.DefaultLength)
	assert.Equal(t, domain.StorageFile, cfg.Storage.Backend)
	assert.Equal(t, domain.DefaultMaxLength, cfg.Generator.MaxLength)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences: [oops"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestEnvOverridesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(EnvConfigPath, path)

	loader := NewFileLoader("")
	assert.Equal(t, path, loader.Path())
}

func TestSaveBackupReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	require.NoError(t, err)
	cfg.Preferences.DefaultLength = 40
	require.NoError(t, loader.Save(cfg))

	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.FileExists(t, backup)

	loaded, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Preferences.DefaultLength)

	reset, err := loader.Reset()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(DefaultConfig(), reset))
}
