package service

import (
	"strings"

	"github.com/google/uuid"

	"pomosync/internal/model"
)

// TaskRecorder receives goal completion transitions.
type TaskRecorder interface {
	RecordTaskChecked(checked bool)
}

// GoalStore owns the goal list. Goals keep insertion order. Every mutator
// reports whether anything changed; unknown ids are no-ops.
type GoalStore struct {
	goals    []model.Goal
	recorder TaskRecorder
	newID    func() string
}

func NewGoalStore(recorder TaskRecorder, goals []model.Goal) *GoalStore {
	store := &GoalStore{
		goals:    make([]model.Goal, 0, len(goals)),
		recorder: recorder,
		newID:    uuid.NewString,
	}
	store.goals = append(store.goals, goals...)
	return store
}

// Add appends a goal. Blank titles are rejected without error.
func (s *GoalStore) Add(title string, plannedPomodoros int) (model.Goal, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Goal{}, false
	}

	goal := model.Goal{
		ID:               s.newID(),
		Title:            title,
		PlannedPomodoros: clamp(plannedPomodoros, model.MinPlannedPomodoros, model.MaxPlannedPomodoros),
	}
	s.goals = append(s.goals, goal)
	return goal, true
}

func (s *GoalStore) Increment(id string) bool {
	return s.adjust(id, 1)
}

func (s *GoalStore) Decrement(id string) bool {
	return s.adjust(id, -1)
}

func (s *GoalStore) adjust(id string, delta int) bool {
	goal := s.find(id)
	if goal == nil {
		return false
	}
	next := clamp(goal.DonePomodoros+delta, 0, goal.PlannedPomodoros)
	if next == goal.DonePomodoros {
		return false
	}
	goal.DonePomodoros = next
	return true
}

// SetChecked records a completion transition only when the value flips.
func (s *GoalStore) SetChecked(id string, checked bool) bool {
	goal := s.find(id)
	if goal == nil || goal.Checked == checked {
		return false
	}
	goal.Checked = checked
	if s.recorder != nil {
		s.recorder.RecordTaskChecked(checked)
	}
	return true
}

func (s *GoalStore) Toggle(id string) bool {
	goal := s.find(id)
	if goal == nil {
		return false
	}
	return s.SetChecked(id, !goal.Checked)
}

// Remove deletes a goal. The completed task count is left as is: it
// records history, not the current list.
func (s *GoalStore) Remove(id string) bool {
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return true
		}
	}
	return false
}

func (s *GoalStore) Get(id string) (model.Goal, bool) {
	goal := s.find(id)
	if goal == nil {
		return model.Goal{}, false
	}
	return *goal, true
}

func (s *GoalStore) Goals() []model.Goal {
	out := make([]model.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

func (s *GoalStore) find(id string) *model.Goal {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return &s.goals[i]
		}
	}
	return nil
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
