// Package storage provides the key-value backends behind the password history:
// SQLite (default), a JSON file and process memory.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/pkg/filesystem"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Open builds the configured store. If the SQLite database cannot be opened the
// JSON file store in the same directory is used instead.
func Open(ctx context.Context, settings domain.StorageSettings, log ports.Logger) (ports.KeyValueStore, error) {
	path := ResolvePath(settings)
	switch settings.Backend {
	case domain.StorageSQLite, "":
		store, err := OpenSQLiteStore(ctx, path)
		if err == nil {
			return store, nil
		}
		fallback := filepath.Join(filepath.Dir(path), domain.DefaultStoreFile)
		if log != nil {
			log.Warn("sqlite unavailable, using file store", map[string]interface{}{
				"path":     path,
				"fallback": fallback,
				"error":    err.Error(),
			})
		}
		return NewFileStore(fallback), nil
	case domain.StorageFile:
		return NewFileStore(path), nil
	case domain.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
}

// ResolvePath returns the on-disk location for the configured backend.
func ResolvePath(settings domain.StorageSettings) string {
	if settings.Path != "" {
		return filesystem.ExpandPath(settings.Path)
	}
	dir := filepath.Join(filesystem.UserHomeDir(), domain.ConfigDirName)
	switch settings.Backend {
	case domain.StorageFile:
		return filepath.Join(dir, domain.DefaultStoreFile)
	case domain.StorageMemory:
		return ""
	default:
		return filepath.Join(dir, domain.DefaultSQLiteFile)
	}
}
