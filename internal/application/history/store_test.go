package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/internal/domain"
)

func TestLoadInitialisesMissingList(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil, nil, 0)

	list, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, "[]", string(kv.data[domain.HistoryKey]))
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := NewStore(newStubKV(), nil, nil, 0)
	ctx := context.Background()

	want := domain.HistoryList{"abc123", "Xy9!zz"}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveStoresJSONArray(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil, nil, 0)

	require.NoError(t, store.Save(context.Background(), domain.HistoryList{"abc123", "Xy9!zz"}))
	assert.JSONEq(t, `["abc123","Xy9!zz"]`, string(kv.data[domain.HistoryKey]))
}

func TestClearThenLoadIsEmpty(t *testing.T) {
	store := NewStore(newStubKV(), nil, nil, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.HistoryList{"a", "b"}))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendKeepsOrderAndDuplicates(t *testing.T) {
	store := NewStore(newStubKV(), nil, nil, 0)
	ctx := context.Background()

	for _, p := range []string{"one", "two", "one"} {
		_, err := store.Append(ctx, p)
		require.NoError(t, err)
	}

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.HistoryList{"one", "two", "one"}, got)
}

func TestAppendTrimsOldestBeyondMax(t *testing.T) {
	store := NewStore(newStubKV(), nil, nil, 2)
	ctx := context.Background()

	var list domain.HistoryList
	var err error
	for _, p := range []string{"a", "b", "c"} {
		list, err = store.Append(ctx, p)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.HistoryList{"b", "c"}, list)
}

func TestLoadCorruptValue(t *testing.T) {
	kv := newStubKV()
	kv.data[domain.HistoryKey] = []byte(`{"not":"a list"}`)
	store := NewStore(kv, nil, nil, 0)
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCorruptHistory))

	require.NoError(t, store.Clear(ctx), "clear must repair a corrupt value")
	list, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLoadNullValueIsEmpty(t *testing.T) {
	kv := newStubKV()
	kv.data[domain.HistoryKey] = []byte("null")
	store := NewStore(kv, nil, nil, 0)

	list, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPrimaryFailureFallsBackToMemory(t *testing.T) {
	primary := newStubKV()
	fallback := newStubKV()
	log := &recordingLogger{}
	store := NewStore(primary, fallback, log, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.HistoryList{"kept"}))
	require.NoError(t, store.Degraded())

	primary.err = errors.New("disk unplugged")

	list, err := store.Append(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, domain.HistoryList{"kept", "new"}, list)

	degraded := store.Degraded()
	require.Error(t, degraded)
	assert.True(t, errors.Is(degraded, domain.ErrStorageUnavailable))
	var unavailable *domain.StorageUnavailableError
	require.ErrorAs(t, degraded, &unavailable)
	assert.Equal(t, "stub", unavailable.Backend)
	assert.Len(t, log.warnings, 1)

	// primary recovers but the store stays on the fallback for this process
	primary.err = nil
	_, err = store.Append(ctx, "later")
	require.NoError(t, err)
	assert.JSONEq(t, `["kept"]`, string(primary.data[domain.HistoryKey]))
	assert.JSONEq(t, `["kept","new","later"]`, string(fallback.data[domain.HistoryKey]))
}

func TestPrimaryFailureWithoutFallbackSurfaces(t *testing.T) {
	primary := newStubKV()
	primary.err = errors.New("locked")
	store := NewStore(primary, nil, nil, 0)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read history")
	assert.NoError(t, store.Degraded())
}

func TestCancelledContextDoesNotDegrade(t *testing.T) {
	primary := newStubKV()
	primary.err = context.Canceled
	store := NewStore(primary, newStubKV(), nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.NoError(t, store.Degraded())
}

func TestNoStorageConfigured(t *testing.T) {
	store := NewStore(nil, nil, nil, 0)
	_, err := store.Load(context.Background())
	require.Error(t, err)
}

type stubKV struct {
	data map[string][]byte
	err  error
}

func newStubKV() *stubKV {
	return &stubKV{data: map[string][]byte{}}
}

func (s *stubKV) Get(_ context.Context, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (s *stubKV) Set(_ context.Context, key string, value []byte) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *stubKV) Delete(_ context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.data, key)
	return nil
}

func (s *stubKV) Close() error     { return nil }
func (s *stubKV) Backend() string  { return "stub" }
func (s *stubKV) Location() string { return "memory://stub" }

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(string, error, map[string]interface{}) {}
