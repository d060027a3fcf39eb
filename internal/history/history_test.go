package history

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/footprint"
)

func sampleEntry(t *testing.T, total float64, at time.Time) Entry {
	t.Helper()
	return NewEntry(footprint.Inputs{Diet: footprint.DietVegan}, footprint.Result{Diet: total, Total: total}, at)
}

// storeContract exercises the behavior every Store must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	assert.Empty(t, store.Load(ctx))

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	first := sampleEntry(t, 5.0, base)
	second := sampleEntry(t, 4.0, base.Add(24*time.Hour))
	third := sampleEntry(t, 3.0, base.Add(48*time.Hour))

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))
	require.NoError(t, store.Append(ctx, third))

	got := store.Load(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, third.ID, got[2].ID)
	assert.InDelta(t, 5.0, got[0].Results.Total, 1e-12)
	assert.True(t, got[0].Timestamp.Equal(base))
	assert.Equal(t, footprint.DietVegan, got[0].Inputs.Diet)

	err := store.Append(ctx, Entry{Timestamp: base})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	err = store.Append(ctx, Entry{ID: "x"})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Len(t, store.Load(ctx), 3)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(sampleEntry(t, 5, time.Now()))

	loaded := store.Load(ctx)
	loaded[0].Results.Total = 99
	assert.InDelta(t, 5.0, store.Load(ctx)[0].Results.Total, 1e-12)
}

func TestFileStore(t *testing.T) {
	t.Parallel()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "history.json"))
	require.NoError(t, err)
	storeContract(t, store)
}

func TestNewFileStore_DefaultPath(t *testing.T) {
	t.Parallel()
	store, err := NewFileStore("")
	require.NoError(t, err)
	assert.Contains(t, store.FilePath(), filepath.Join(".ecotrack", "history.json"))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")

	s1, err := NewFileStore(path)
	require.NoError(t, err)
	e := sampleEntry(t, 2.5, time.Now())
	require.NoError(t, s1.Append(ctx, e))

	s2, err := NewFileStore(path)
	require.NoError(t, err)
	got := s2.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)

	_, statErr := os.Stat(path + ".lock")
	assert.True(t, os.IsNotExist(statErr), "lock must be released")
}

func TestFileStore_CorruptLoadsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := map[string]string{
		"invalid json":    "{invalid json",
		"wrong version":   `{"version": 7, "entries": []}`,
		"truncated array": `[{"id":"a"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "history.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			store, err := NewFileStore(path)
			require.NoError(t, err)

			got := store.Load(ctx)
			assert.NotNil(t, got)
			assert.Empty(t, got)

			_, readErr := store.ReadAll(ctx)
			assert.ErrorIs(t, readErr, ErrStoreCorrupted)
		})
	}
}

func TestFileStore_EmptyFileLoadsEmpty(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	entries, readErr := store.ReadAll(context.Background())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestFileStore_AppendAfterCorruptionMovesItAside(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleEntry(t, 3, time.Now())))

	assert.Len(t, store.Load(ctx), 1)
	backup, readErr := os.ReadFile(path + ".corrupt")
	require.NoError(t, readErr)
	assert.Equal(t, "garbage", string(backup))
}

func TestFileStore_LegacyArray(t *testing.T) {
	t.Parallel()
	legacy := `[
	  {"id":"6f1c","date":"2025-03-01T10:00:00.000Z",
	   "inputs":{"carKmYear":8000,"airHoursYear":12,"kwhMonth":250,"wasteKgMonth":20,"diet":"medium"},
	   "results":{"total":8.668,"car":1.6,"air":1.08,"energy":2.1,"waste":0.288,"diet":3.6}},
	  {"id":"7a2d","date":"2025-04-01T10:00:00.000Z",
	   "inputs":{"carKmYear":0,"airHoursYear":0,"kwhMonth":0,"wasteKgMonth":0,"diet":"vegan"},
	   "results":{"total":1.5,"car":0,"air":0,"energy":0,"waste":0,"diet":1.5}}
	]`
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	got := store.Load(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "6f1c", got[0].ID)
	assert.InDelta(t, 8000, got[0].Inputs.CarKmPerYear, 1e-9)
	assert.InDelta(t, 8.668, got[0].Results.Total, 1e-9)
	assert.Equal(t, footprint.DietVegan, got[1].Inputs.Diet)

	// Appending upgrades the file to the versioned layout and keeps the old entries.
	require.NoError(t, store.Append(context.Background(), sampleEntry(t, 2, time.Now())))
	got = store.Load(context.Background())
	require.Len(t, got, 3)
	assert.Equal(t, "7a2d", got[1].ID)
}

func TestFileStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Append(ctx, sampleEntry(t, float64(i), time.Now()))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, store.Load(ctx), n)
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	store, err := OpenSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	storeContract(t, store)
}

func TestSQLiteStore_File(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "history.db")

	s1, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	e := sampleEntry(t, 4.2, time.Now())
	require.NoError(t, s1.Append(ctx, e))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })
	got := s2.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
}

func TestSQLiteStore_SkipsCorruptRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := OpenSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Append(ctx, sampleEntry(t, 1, time.Now())))
	_, err = store.db.ExecContext(ctx, insertEntrySQL, "broken", time.Now().Format(time.RFC3339Nano), "{not json")
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleEntry(t, 2, time.Now())))

	got := store.Load(ctx)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0].Results.Total, 1e-12)
	assert.InDelta(t, 2.0, got[1].Results.Total, 1e-12)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, closeFn, err := Open(ctx, "", filepath.Join(t.TempDir(), "h.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	require.NoError(t, closeFn())

	s, closeFn, err = Open(ctx, BackendSQLite, ":memory:")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, closeFn())

	s, _, err = Open(ctx, BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, _, err = Open(ctx, "postgres", "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewID_Sortable(t *testing.T) {
	now := time.Now()
	a := NewID(now)
	b := NewID(now)
	c := NewID(now.Add(time.Second))
	assert.Len(t, a, 26)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}
