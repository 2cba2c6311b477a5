package store

import (
	"context"
	"sync"

	"fittrack/internal/catalog/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/sentinel"
)

// InMemory keeps templates in insertion order. Every read returns a clone.
type InMemory struct {
	mu        sync.RWMutex
	templates map[domain.TemplateID]*models.Template
	order     []domain.TemplateID
}

func NewInMemory() *InMemory {
	return &InMemory{templates: make(map[domain.TemplateID]*models.Template)}
}

func (s *InMemory) Create(_ context.Context, t *models.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[t.ID]; exists {
		return sentinel.ErrConflict
	}
	s.templates[t.ID] = t.Clone()
	s.order = append(s.order, t.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.TemplateID) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return t.Clone(), nil
}

// List returns templates visible to userID that match filter.
func (s *InMemory) List(_ context.Context, userID domain.UserID, filter models.Filter) ([]*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Template, 0, len(s.order))
	for _, id := range s.order {
		t := s.templates[id]
		if t.VisibleTo(userID) && filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (s *InMemory) Update(_ context.Context, t *models.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[t.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.templates[t.ID] = t.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, id domain.TemplateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.templates, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
