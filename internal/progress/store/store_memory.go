package store

import (
	"context"
	"sort"
	"sync"

	"fittrack/internal/progress/models"
	"fittrack/pkg/domain"
)

type journal map[domain.UserID]map[domain.Date]*models.Entry

// InMemory keeps progress entries keyed by user and date. Like the schedule
// store it can share its lock so counter updates join a workout transition.
type InMemory struct {
	mu      *sync.RWMutex
	inTx    bool
	entries journal
}

func NewInMemory(mu *sync.RWMutex) *InMemory {
	if mu == nil {
		mu = &sync.RWMutex{}
	}
	return &InMemory{mu: mu, entries: make(journal)}
}

// Unguarded returns a lock-free view over the same entries. Only valid while
// the caller holds the write lock.
func (s *InMemory) Unguarded() *InMemory {
	return &InMemory{mu: s.mu, inTx: true, entries: s.entries}
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

// ListByUser returns entries newest first.
func (s *InMemory) ListByUser(_ context.Context, userID domain.UserID) ([]*models.Entry, error) {
	defer s.rlock()()
	out := make([]*models.Entry, 0, len(s.entries[userID]))
	for _, e := range s.entries[userID] {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// UpsertWeight sets the weight for date, keeping any completed count.
func (s *InMemory) UpsertWeight(_ context.Context, userID domain.UserID, date domain.Date, weight float64) (*models.Entry, error) {
	defer s.lock()()
	e := s.entry(userID, date)
	e.Weight = &weight
	return e.Clone(), nil
}

func (s *InMemory) IncrementCompleted(_ context.Context, userID domain.UserID, date domain.Date) error {
	defer s.lock()()
	s.entry(userID, date).WorkoutsCompleted++
	return nil
}

// DecrementCompleted is a no-op when no entry exists and clamps at zero.
func (s *InMemory) DecrementCompleted(_ context.Context, userID domain.UserID, date domain.Date) error {
	defer s.lock()()
	e, ok := s.entries[userID][date]
	if !ok {
		return nil
	}
	if e.WorkoutsCompleted > 0 {
		e.WorkoutsCompleted--
	}
	return nil
}

func (s *InMemory) DeleteAllForUser(_ context.Context, userID domain.UserID) error {
	defer s.lock()()
	delete(s.entries, userID)
	return nil
}

// entry returns the live entry for (userID, date), creating it if needed.
// Callers hold the write lock.
func (s *InMemory) entry(userID domain.UserID, date domain.Date) *models.Entry {
	byDate, ok := s.entries[userID]
	if !ok {
		byDate = make(map[domain.Date]*models.Entry)
		s.entries[userID] = byDate
	}
	e, ok := byDate[date]
	if !ok {
		e = &models.Entry{UserID: userID, Date: date}
		byDate[date] = e
	}
	return e
}
