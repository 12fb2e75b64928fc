package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomosync/internal/model"
)

func newTestGoalStore() (*GoalStore, *StatsAggregator) {
	stats := NewStatsAggregator(model.Stats{})
	store := NewGoalStore(stats, nil)
	next := 0
	store.newID = func() string {
		next++
		return fmt.Sprintf("goal-%d", next)
	}
	return store, stats
}

func TestGoalStoreAdd(t *testing.T) {
	store, _ := newTestGoalStore()

	goal, ok := store.Add("  write report  ", 4)
	require.True(t, ok)
	assert.Equal(t, model.Goal{ID: "goal-1", Title: "write report", PlannedPomodoros: 4}, goal)

	_, ok = store.Add("   ", 3)
	assert.False(t, ok)
	_, ok = store.Add("", 3)
	assert.False(t, ok)

	low, _ := store.Add("low", 0)
	high, _ := store.Add("high", 40)
	assert.Equal(t, 1, low.PlannedPomodoros)
	assert.Equal(t, 12, high.PlannedPomodoros)

	titles := []string{}
	for _, g := range store.Goals() {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"write report", "low", "high"}, titles, "insertion order")
}

func TestGoalStoreGeneratesUniqueIDs(t *testing.T) {
	store := NewGoalStore(nil, nil)
	a, _ := store.Add("a", 1)
	b, _ := store.Add("b", 1)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGoalStoreIncrementDecrementClamp(t *testing.T) {
	store, _ := newTestGoalStore()
	goal, _ := store.Add("read", 2)

	assert.True(t, store.Increment(goal.ID))
	assert.True(t, store.Increment(goal.ID))
	assert.False(t, store.Increment(goal.ID))
	got, _ := store.Get(goal.ID)
	assert.Equal(t, 2, got.DonePomodoros)

	assert.True(t, store.Decrement(goal.ID))
	assert.True(t, store.Decrement(goal.ID))
	assert.False(t, store.Decrement(goal.ID))
	got, _ = store.Get(goal.ID)
	assert.Equal(t, 0, got.DonePomodoros)

	assert.False(t, store.Increment("missing"))
	assert.False(t, store.Decrement("missing"))
}

func TestGoalStoreSetCheckedIdempotent(t *testing.T) {
	store, stats := newTestGoalStore()
	goal, _ := store.Add("ship", 1)

	assert.True(t, store.SetChecked(goal.ID, true))
	assert.Equal(t, 1, stats.Stats().CompletedTasks)

	assert.False(t, store.SetChecked(goal.ID, true))
	assert.Equal(t, 1, stats.Stats().CompletedTasks)

	assert.True(t, store.SetChecked(goal.ID, false))
	assert.Equal(t, 0, stats.Stats().CompletedTasks)

	assert.False(t, store.SetChecked("missing", true))
	assert.Equal(t, 0, stats.Stats().CompletedTasks)
}

func TestGoalStoreToggle(t *testing.T) {
	store, stats := newTestGoalStore()
	goal, _ := store.Add("ship", 1)

	assert.True(t, store.Toggle(goal.ID))
	got, _ := store.Get(goal.ID)
	assert.True(t, got.Checked)
	assert.True(t, store.Toggle(goal.ID))
	assert.Equal(t, 0, stats.Stats().CompletedTasks)
	assert.False(t, store.Toggle("missing"))
}

func TestGoalStoreRemoveKeepsCompletedCount(t *testing.T) {
	store, stats := newTestGoalStore()
	first, _ := store.Add("first", 1)
	second, _ := store.Add("second", 1)
	store.SetChecked(first.ID, true)

	assert.True(t, store.Remove(first.ID))
	assert.False(t, store.Remove(first.ID))
	assert.Equal(t, 1, stats.Stats().CompletedTasks)

	goals := store.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, second.ID, goals[0].ID)
}

func TestGoalStoreGoalsReturnsCopy(t *testing.T) {
	store, _ := newTestGoalStore()
	goal, _ := store.Add("a", 3)

	goals := store.Goals()
	goals[0].DonePomodoros = 3

	got, _ := store.Get(goal.ID)
	assert.Equal(t, 0, got.DonePomodoros)
}
