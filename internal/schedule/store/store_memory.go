package store

import (
	"context"
	"sort"
	"sync"

	"fittrack/internal/schedule/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/sentinel"
)

type workoutData struct {
	byID  map[domain.WorkoutID]*models.DailyWorkout
	order []domain.WorkoutID
}

// InMemory keeps daily workouts behind a lock that it may share with the
// progress journal, so a status flip and its counter update commit together.
type InMemory struct {
	mu   *sync.RWMutex
	inTx bool
	data *workoutData
}

// NewInMemory uses mu to guard every operation. Pass the same mutex to the
// progress store when both must be updated atomically.
func NewInMemory(mu *sync.RWMutex) *InMemory {
	if mu == nil {
		mu = &sync.RWMutex{}
	}
	return &InMemory{
		mu:   mu,
		data: &workoutData{byID: make(map[domain.WorkoutID]*models.DailyWorkout)},
	}
}

// Unguarded returns a view over the same data that takes no locks. It is only
// valid while the caller holds the write lock.
func (s *InMemory) Unguarded() *InMemory {
	return &InMemory{mu: s.mu, inTx: true, data: s.data}
}

func (s *InMemory) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *InMemory) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *InMemory) Create(_ context.Context, w *models.DailyWorkout) error {
	defer s.lock()()
	if _, exists := s.data.byID[w.ID]; exists {
		return sentinel.ErrConflict
	}
	s.data.byID[w.ID] = w.Clone()
	s.data.order = append(s.data.order, w.ID)
	return nil
}

// FindByIDForUser returns ErrNotFound for workouts owned by someone else.
func (s *InMemory) FindByIDForUser(_ context.Context, userID domain.UserID, id domain.WorkoutID) (*models.DailyWorkout, error) {
	defer s.rlock()()
	w, ok := s.data.byID[id]
	if !ok || w.UserID != userID {
		return nil, sentinel.ErrNotFound
	}
	return w.Clone(), nil
}

// ListByUser orders by date, newest first; same-day workouts keep
// scheduling order.
func (s *InMemory) ListByUser(_ context.Context, userID domain.UserID) ([]*models.DailyWorkout, error) {
	defer s.rlock()()
	out := make([]*models.DailyWorkout, 0)
	for _, id := range s.data.order {
		if w := s.data.byID[id]; w.UserID == userID {
			out = append(out, w.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

func (s *InMemory) Update(_ context.Context, w *models.DailyWorkout) error {
	defer s.lock()()
	existing, ok := s.data.byID[w.ID]
	if !ok || existing.UserID != w.UserID {
		return sentinel.ErrNotFound
	}
	s.data.byID[w.ID] = w.Clone()
	return nil
}

func (s *InMemory) DeleteForUser(_ context.Context, userID domain.UserID, id domain.WorkoutID) error {
	defer s.lock()()
	w, ok := s.data.byID[id]
	if !ok || w.UserID != userID {
		return sentinel.ErrNotFound
	}
	delete(s.data.byID, id)
	s.data.order = removeID(s.data.order, id)
	return nil
}

func (s *InMemory) DeleteAllForUser(_ context.Context, userID domain.UserID) error {
	defer s.lock()()
	kept := s.data.order[:0]
	for _, id := range s.data.order {
		if s.data.byID[id].UserID == userID {
			delete(s.data.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	s.data.order = kept
	return nil
}

func removeID(ids []domain.WorkoutID, target domain.WorkoutID) []domain.WorkoutID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
