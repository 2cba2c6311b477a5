package user

import (
	"context"
	"sync"

	"fittrack/internal/identity/models"
	"fittrack/pkg/domain"
	"fittrack/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in a map guarded by a RWMutex.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[domain.UserID]*models.User
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[domain.UserID]*models.User)}
}

// CreateIfAvailable stores user when neither its email nor its username is in
// use, assigning the role from the number of users already stored. The
// uniqueness check, role decision and insert happen under one lock.
func (s *InMemoryUserStore) CreateIfAvailable(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAvailableLocked(user.ID, user.Email, user.Username); err != nil {
		return err
	}
	user.Role = models.RoleForPosition(len(s.users))
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id domain.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// UpdateProfile replaces username and email, rejecting values held by another user.
func (s *InMemoryUserStore) UpdateProfile(_ context.Context, id domain.UserID, username, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := s.checkAvailableLocked(id, email, username); err != nil {
		return nil, err
	}
	u.Username = username
	u.Email = email
	updated := *u
	return &updated, nil
}

func (s *InMemoryUserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// checkAvailableLocked ignores the record with id self. Email is checked first.
func (s *InMemoryUserStore) checkAvailableLocked(self domain.UserID, email, username string) error {
	for id, u := range s.users {
		if id == self {
			continue
		}
		if u.Email == email {
			return ErrEmailTaken
		}
	}
	for id, u := range s.users {
		if id == self {
			continue
		}
		if u.Username == username {
			return ErrUsernameTaken
		}
	}
	return nil
}
