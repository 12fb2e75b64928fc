package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomosync/internal/db"
	"pomosync/internal/model"
	"pomosync/migrations"
)

func newTestKV(t *testing.T) *KVRepository {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database, migrations.FS))
	return NewKVRepository(database)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKVRepositoryPutGet(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, "k", "one"))
	require.NoError(t, kv.Put(ctx, "k", "two"))

	entry, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", entry.Value)
	assert.False(t, entry.UpdatedAt.IsZero())

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(newTestKV(t), quietLogger())

	state := model.PersistedState{
		Goals: []model.Goal{
			{ID: "a", Title: "write", PlannedPomodoros: 4, DonePomodoros: 2, Checked: false},
			{ID: "b", Title: "review", PlannedPomodoros: 1, DonePomodoros: 1, Checked: true},
		},
		Stats: model.Stats{
			CompletedTasks:          1,
			CompletedPomodoros:      7,
			AccumulatedFocusSeconds: 10500,
			AccumulatedBreakSeconds: 2100,
		},
		Sources: model.SourceConfig{
			Work:  "https://youtu.be/abc123",
			Break: "https://www.youtube.com/playlist?list=PL1",
		},
	}

	require.NoError(t, repo.Save(ctx, state))
	assert.Equal(t, state, repo.Load(ctx))
}

func TestStateRepositoryLoadDefaultsWhenEmpty(t *testing.T) {
	repo := NewStateRepository(newTestKV(t), quietLogger())
	assert.Equal(t, model.DefaultPersistedState(), repo.Load(context.Background()))
}

func TestStateRepositoryCorruptStatsOnlyAffectsStats(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	repo := NewStateRepository(kv, quietLogger())

	goals := []model.Goal{{ID: "g", Title: "focus", PlannedPomodoros: 2}}
	sources := model.SourceConfig{Work: "https://youtu.be/w", Break: "https://youtu.be/b"}
	require.NoError(t, repo.Save(ctx, model.PersistedState{
		Goals:   goals,
		Stats:   model.Stats{CompletedPomodoros: 3},
		Sources: sources,
	}))
	require.NoError(t, kv.Put(ctx, StatsKey, `{"completedTasks":"many","completedPomodoros":3}`))

	loaded := repo.Load(ctx)
	assert.Equal(t, model.Stats{}, loaded.Stats)
	assert.Equal(t, goals, loaded.Goals)
	assert.Equal(t, sources, loaded.Sources)
}

func TestStateRepositoryRejectsNegativeStats(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Put(ctx, StatsKey, `{"completedTasks":-1,"completedPomodoros":3}`))

	loaded := NewStateRepository(kv, quietLogger()).Load(ctx)
	assert.Equal(t, model.Stats{}, loaded.Stats)
}

func TestStateRepositoryCorruptGoalsAndSources(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Put(ctx, GoalsKey, `{not json`))
	require.NoError(t, kv.Put(ctx, SourcesKey, `[1,2,3]`))
	require.NoError(t, kv.Put(ctx, StatsKey, `{"completedPomodoros":5}`))

	loaded := NewStateRepository(kv, quietLogger()).Load(ctx)
	assert.Empty(t, loaded.Goals)
	assert.NotNil(t, loaded.Goals)
	assert.Equal(t, model.DefaultSourceConfig(), loaded.Sources)
	assert.Equal(t, 5, loaded.Stats.CompletedPomodoros)
}

func TestStateRepositorySanitizesGoals(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Put(ctx, GoalsKey, `[
		{"id":"a","title":"  keep  ","plannedPomodoros":30,"donePomodoros":40,"checked":true},
		{"id":"b","title":"   ","plannedPomodoros":2},
		{"title":"no id","plannedPomodoros":0,"donePomodoros":-2},
		{"id":"a","title":"duplicate id","plannedPomodoros":3}
	]`))
	require.NoError(t, kv.Put(ctx, SourcesKey, `{"work":"","break":"https://youtu.be/b"}`))

	loaded := NewStateRepository(kv, quietLogger()).Load(ctx)
	require.Len(t, loaded.Goals, 3)

	assert.Equal(t, model.Goal{ID: "a", Title: "keep", PlannedPomodoros: 12, DonePomodoros: 12, Checked: true}, loaded.Goals[0])
	assert.NotEmpty(t, loaded.Goals[1].ID)
	assert.Equal(t, 1, loaded.Goals[1].PlannedPomodoros)
	assert.Equal(t, 0, loaded.Goals[1].DonePomodoros)
	assert.NotEqual(t, "a", loaded.Goals[2].ID)
	assert.Equal(t, model.DefaultWorkURL, loaded.Sources.Work)
	assert.Equal(t, "https://youtu.be/b", loaded.Sources.Break)
}

type flakyKV struct {
	values  map[string]string
	failKey string
}

func (f *flakyKV) Get(_ context.Context, key string) (*Entry, error) {
	value, ok := f.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Entry{Key: key, Value: value}, nil
}

func (f *flakyKV) Put(_ context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("write refused")
	}
	f.values[key] = value
	return nil
}

func TestStateRepositorySaveWritesKeysIndependently(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{values: map[string]string{}, failKey: GoalsKey}
	repo := NewStateRepository(kv, quietLogger())

	err := repo.Save(ctx, model.PersistedState{
		Goals:   []model.Goal{{ID: "g", Title: "t", PlannedPomodoros: 1}},
		Stats:   model.Stats{CompletedPomodoros: 2},
		Sources: model.DefaultSourceConfig(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write refused")

	assert.NotContains(t, kv.values, GoalsKey)
	assert.Contains(t, kv.values, StatsKey)
	assert.Contains(t, kv.values, SourcesKey)

	loaded := repo.Load(ctx)
	assert.Empty(t, loaded.Goals)
	assert.Equal(t, 2, loaded.Stats.CompletedPomodoros)
}

func TestStateRepositoryReadErrorFallsBack(t *testing.T) {
	kv := &erroringKV{}
	loaded := NewStateRepository(kv, quietLogger()).Load(context.Background())
	assert.Equal(t, model.DefaultPersistedState(), loaded)
}

type erroringKV struct{}

func (erroringKV) Get(context.Context, string) (*Entry, error) {
	return nil, errors.New("database locked")
}

func (erroringKV) Put(context.Context, string, string) error {
	return errors.New("database locked")
}
