package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndQuery(t *testing.T) {
	store := newStore(t)
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := t.Context()

	last, err := store.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	first, err := store.Record(ctx, Record{ConfigDigest: "c1", InputDigest: "i1", OutputDigest: "o1", OutputDir: "site", Year: 2024, Files: 4, Warnings: 4})
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 1, 0, 0, time.UTC), first.CreatedAt)

	second, err := store.Record(ctx, Record{ConfigDigest: "c2", InputDigest: "i2", OutputDigest: "o2", OutputDir: "site", Year: 2024, Files: 3})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	last, err = store.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second, *last)

	byInput, err := store.LastForInput(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, byInput)
	assert.Equal(t, first, *byInput)

	none, err := store.LastForInput(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, none)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []Record{second, first}, all)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []Record{second}, limited)
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	rec, err := store.Record(t.Context(), Record{ConfigDigest: "c", InputDigest: "i", OutputDigest: "o", OutputDir: "out", Year: 2024})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	last, err := reopened.Last(t.Context())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, rec.ID, last.ID)
}

func TestCompare(t *testing.T) {
	cur := Record{InputDigest: "i", OutputDigest: "o"}
	assert.Equal(t, StatusFirst, Compare(cur, nil, nil))
	assert.Equal(t, StatusUnchanged, Compare(cur, &Record{OutputDigest: "o"}, nil))
	assert.Equal(t, StatusChanged, Compare(cur, &Record{OutputDigest: "x"}, nil))
	assert.Equal(t, StatusUnchanged, Compare(cur, &Record{OutputDigest: "o"}, &Record{OutputDigest: "o"}))
	assert.Equal(t, StatusNondeterministic, Compare(cur, &Record{OutputDigest: "o"}, &Record{OutputDigest: "x"}))
}

func TestNewSQLiteStore_UnwritablePath(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "missing", "dir", "history.db"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryHistory))
}
