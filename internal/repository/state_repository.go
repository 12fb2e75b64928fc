package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"pomosync/internal/model"
)

const (
	GoalsKey   = "pomodoro_goals_v1"
	StatsKey   = "pomodoro_stats_v1"
	SourcesKey = "pomodoro_sources_v1"
)

// KeyValueStore is the durable store the state groups are written to.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key, value string) error
}

// StateRepository persists goals, stats and sources as three independent
// JSON records. A missing or corrupt record only affects its own group.
type StateRepository struct {
	kv     KeyValueStore
	logger *slog.Logger
}

func NewStateRepository(kv KeyValueStore, logger *slog.Logger) *StateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateRepository{kv: kv, logger: logger}
}

// Save writes every group even if an earlier one fails, and returns the
// joined errors.
func (r *StateRepository) Save(ctx context.Context, state model.PersistedState) error {
	goals := state.Goals
	if goals == nil {
		goals = []model.Goal{}
	}

	var errs []error
	errs = append(errs, r.put(ctx, GoalsKey, goals))
	errs = append(errs, r.put(ctx, StatsKey, state.Stats))
	errs = append(errs, r.put(ctx, SourcesKey, state.Sources.WithDefaults()))
	return errors.Join(errs...)
}

func (r *StateRepository) put(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.kv.Put(ctx, key, string(raw))
}

// Load never fails: each group falls back to its default on its own.
func (r *StateRepository) Load(ctx context.Context) model.PersistedState {
	state := model.DefaultPersistedState()

	var goals []model.Goal
	if r.get(ctx, GoalsKey, &goals) {
		state.Goals = sanitizeGoals(goals)
	}

	var stats model.Stats
	if r.get(ctx, StatsKey, &stats) {
		if stats.Valid() {
			state.Stats = stats
		} else {
			r.logger.Warn("discarding persisted group", "key", StatsKey, "reason", "negative counter")
		}
	}

	var sources model.SourceConfig
	if r.get(ctx, SourcesKey, &sources) {
		state.Sources = sources.WithDefaults()
	}

	return state
}

func (r *StateRepository) get(ctx context.Context, key string, dest interface{}) bool {
	entry, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		r.logger.Warn("read persisted group", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		r.logger.Warn("discarding persisted group", "key", key, "error", err)
		return false
	}
	return true
}

func sanitizeGoals(goals []model.Goal) []model.Goal {
	out := make([]model.Goal, 0, len(goals))
	seen := make(map[string]struct{}, len(goals))
	for _, goal := range goals {
		goal.Title = strings.TrimSpace(goal.Title)
		if goal.Title == "" {
			continue
		}
		if _, dup := seen[goal.ID]; goal.ID == "" || dup {
			goal.ID = uuid.NewString()
		}
		seen[goal.ID] = struct{}{}

		if goal.PlannedPomodoros < model.MinPlannedPomodoros {
			goal.PlannedPomodoros = model.MinPlannedPomodoros
		}
		if goal.PlannedPomodoros > model.MaxPlannedPomodoros {
			goal.PlannedPomodoros = model.MaxPlannedPomodoros
		}
		if goal.DonePomodoros < 0 {
			goal.DonePomodoros = 0
		}
		if goal.DonePomodoros > goal.PlannedPomodoros {
			goal.DonePomodoros = goal.PlannedPomodoros
		}
		out = append(out, goal)
	}
	return out
}
