// Package history keeps the list of generated passwords in a key-value store.
//
// The list lives under a single key as a JSON array and is always rewritten as
// a whole. When the primary store fails, the Store switches to a fallback
// (normally in-memory) store for the rest of the process and reports the
// problem through Degraded instead of failing the caller.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Store implements ports.HistoryRepository.
type Store struct {
	Primary    ports.KeyValueStore
	Fallback   ports.KeyValueStore
	Logger     ports.Logger
	MaxEntries int

	mu        sync.Mutex
	degraded  *domain.StorageUnavailableError
	lastKnown domain.HistoryList
}

// NewStore builds a Store. fallback and log may be nil.
func NewStore(primary, fallback ports.KeyValueStore, log ports.Logger, maxEntries int) *Store {
	return &Store{
		Primary:    primary,
		Fallback:   fallback,
		Logger:     log,
		MaxEntries: maxEntries,
	}
}

// Load returns the persisted list. An absent list is initialised to [] in storage.
func (s *Store) Load(ctx context.Context) (domain.HistoryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save replaces the persisted list.
func (s *Store) Save(ctx context.Context, list domain.HistoryList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, list)
}

// Clear replaces the persisted list with an empty one.
func (s *Store) Clear(ctx context.Context) error {
	return s.Save(ctx, domain.HistoryList{})
}

// Append adds password to the end of the list, dropping the oldest entries
// beyond MaxEntries, and returns the stored list.
func (s *Store) Append(ctx context.Context, password string) (domain.HistoryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	list = append(list.Clone(), password).Trim(s.MaxEntries)
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list.Clone(), nil
}

// Degraded returns the storage failure that forced the fallback, or nil.
func (s *Store) Degraded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded == nil {
		return nil
	}
	return s.degraded
}

func (s *Store) load(ctx context.Context) (domain.HistoryList, error) {
	raw, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		empty := domain.HistoryList{}
		if err := s.save(ctx, empty); err != nil {
			return nil, err
		}
		return empty, nil
	}
	list, err := decode(raw)
	if err != nil {
		return nil, err
	}
	s.lastKnown = list.Clone()
	return list, nil
}

func (s *Store) save(ctx context.Context, list domain.HistoryList) error {
	raw, err := encode(list)
	if err != nil {
		return err
	}
	if err := s.set(ctx, raw); err != nil {
		return err
	}
	s.lastKnown = list.Clone()
	return nil
}

func (s *Store) get(ctx context.Context) ([]byte, error) {
	store, err := s.active()
	if err != nil {
		return nil, err
	}
	raw, err := store.Get(ctx, domain.HistoryKey)
	if err == nil {
		return raw, nil
	}
	if !s.shouldDegrade(ctx, err) {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if err := s.degrade(ctx, err); err != nil {
		return nil, err
	}
	return s.Fallback.Get(ctx, domain.HistoryKey)
}

func (s *Store) set(ctx context.Context, raw []byte) error {
	store, err := s.active()
	if err != nil {
		return err
	}
	err = store.Set(ctx, domain.HistoryKey, raw)
	if err == nil {
		return nil
	}
	if !s.shouldDegrade(ctx, err) {
		return fmt.Errorf("write history: %w", err)
	}
	if err := s.degrade(ctx, err); err != nil {
		return err
	}
	return s.Fallback.Set(ctx, domain.HistoryKey, raw)
}

func (s *Store) active() (ports.KeyValueStore, error) {
	if s.degraded != nil {
		return s.Fallback, nil
	}
	if s.Primary == nil {
		if s.Fallback == nil {
			return nil, errors.New("history store has no backing storage")
		}
		return s.Fallback, nil
	}
	return s.Primary, nil
}

func (s *Store) shouldDegrade(ctx context.Context, err error) bool {
	if s.degraded != nil || s.Fallback == nil {
		return false
	}
	return ctx.Err() == nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// degrade switches to the fallback store, seeding it with the last list seen.
func (s *Store) degrade(ctx context.Context, cause error) error {
	s.degraded = &domain.StorageUnavailableError{Backend: backendName(s.Primary), Err: cause}
	s.warn("history storage unavailable, keeping history in memory", map[string]interface{}{
		"backend": s.degraded.Backend,
		"error":   cause.Error(),
	})
	if s.lastKnown == nil {
		return nil
	}
	raw, err := encode(s.lastKnown)
	if err != nil {
		return err
	}
	return s.Fallback.Set(ctx, domain.HistoryKey, raw)
}

func (s *Store) warn(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, fields)
	}
}

func backendName(store ports.KeyValueStore) string {
	if described, ok := store.(ports.DescribedStore); ok {
		return described.Backend()
	}
	return "primary"
}

func encode(list domain.HistoryList) ([]byte, error) {
	if list == nil {
		list = domain.HistoryList{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (domain.HistoryList, error) {
	var list domain.HistoryList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptHistory, err)
	}
	if list == nil {
		list = domain.HistoryList{}
	}
	return list, nil
}

var _ ports.HistoryRepository = (*Store)(nil)
