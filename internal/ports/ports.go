// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The generator, history store and session depend only
// on these interfaces, so storage backends, clipboard tools and randomness can be
// swapped or stubbed in tests.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., KeyValueStore, Clipboard)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/passgen-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.passgen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is the persistence port behind the password history.
// Get returns (nil, nil) when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DescribedStore is implemented by stores that can report where they keep data.
type DescribedStore interface {
	Backend() string
	Location() string
}

// RandomSource yields uniform integers in [0, n). n must be > 0.
type RandomSource interface {
	IntN(n int) int
}

// PasswordGenerator produces a password for a request.
type PasswordGenerator interface {
	Generate(domain.GenerationRequest) (string, error)
}

// HistoryRepository loads and persists the password history list as a whole.
type HistoryRepository interface {
	Load(ctx context.Context) (domain.HistoryList, error)
	Save(ctx context.Context, list domain.HistoryList) error
	Append(ctx context.Context, password string) (domain.HistoryList, error)
	Clear(ctx context.Context) error
}

// Clipboard provides cross-platform clipboard integration for copying passwords.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// CopyIndicator shows a transient confirmation after a copy.
type CopyIndicator interface {
	Show()
	Visible() bool
	Dismiss()
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
