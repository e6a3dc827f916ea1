package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "shotloc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RunRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := RunRecord{
		ID:         "run-1",
		Product:    "demo",
		Primary:    "en-US",
		Targets:    []string{"ja-JP", "ko-KR"},
		Skipped:    []string{"ms-MY"},
		Successful: 4,
		Failed:     1,
		Written:    6,
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
	failures := []RunFailure{
		{RunID: "run-1", Path: "/p/demo/screenshots/ja-JP/phone/2.png", Reason: "no image part in response"},
	}
	require.NoError(t, store.SaveRun(ctx, rec, failures))

	runs, err := store.ListRuns(ctx, "demo", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, rec.ID, runs[0].ID)
	assert.Equal(t, rec.Targets, runs[0].Targets)
	assert.Equal(t, rec.Skipped, runs[0].Skipped)
	assert.Equal(t, 4, runs[0].Successful)
	assert.False(t, runs[0].DryRun)

	got, err := store.LoadFailures(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, failures[0].Reason, got[0].Reason)
}

func TestSQLiteStore_ListRunsFilterAndLimit(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, product := range []string{"alpha", "alpha", "beta"} {
		rec := RunRecord{
			ID:         "run-" + string(rune('a'+i)),
			Product:    product,
			Primary:    "en-US",
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 30*time.Second),
		}
		require.NoError(t, store.SaveRun(ctx, rec, nil))
	}

	alpha, err := store.ListRuns(ctx, "alpha", 0)
	require.NoError(t, err)
	require.Len(t, alpha, 2)
	// Newest first.
	assert.Equal(t, "run-b", alpha[0].ID)

	limited, err := store.ListRuns(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "run-c", limited[0].ID)
}

func TestSQLiteStore_EmptySlicesSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	rec := RunRecord{
		ID:         "run-1",
		Product:    "demo",
		Primary:    "en-US",
		DryRun:     true,
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveRun(ctx, rec, nil))

	runs, err := store.ListRuns(ctx, "demo", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{}, runs[0].Targets)
	assert.True(t, runs[0].DryRun)
}

func TestSQLiteStore_RequiresRunID(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	err := store.SaveRun(context.Background(), RunRecord{Product: "demo"}, nil)
	require.Error(t, err)
}

func TestNewSQLiteStore_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLiteStore("  ")
	require.Error(t, err)
}
