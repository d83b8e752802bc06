package store

import (
	"context"
	"sync"
	"time"

	"github.com/wealthpath/onboard/core"
)

// MemoryStore is an in-memory implementation of the user and profile
// stores, used for local runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*core.User          // keyed by user ID
	emails   map[string]string              // normalized email -> user ID
	profiles map[string]*core.ProfileRecord // keyed by record ID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*core.User),
		emails:   make(map[string]string),
		profiles: make(map[string]*core.ProfileRecord),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := core.NormalizeEmail(user.Email)
	if _, exists := s.emails[key]; exists {
		return core.ErrEmailTaken
	}

	cp := *user
	s.users[user.ID] = &cp
	s.emails[key] = user.ID

	return nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[core.NormalizeEmail(email)]
	if !ok {
		return nil, core.ErrUserNotFound
	}

	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryStore) UserByID(ctx context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}

func (s *MemoryStore) SetRefreshToken(ctx context.Context, userID, token string) error {
	return s.updateUser(userID, func(user *core.User) error {
		user.RefreshToken = token
		return nil
	})
}

func (s *MemoryStore) SwapRefreshToken(ctx context.Context, userID, current, next string) error {
	return s.updateUser(userID, func(user *core.User) error {
		if user.RefreshToken != current {
			return core.ErrStaleRefreshToken
		}
		user.RefreshToken = next
		return nil
	})
}

func (s *MemoryStore) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.updateUser(userID, func(user *core.User) error {
		user.RefreshToken = ""
		return nil
	})
}

// updateUser applies a mutation to a user record under the write lock.
func (s *MemoryStore) updateUser(userID string, apply func(*core.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return core.ErrUserNotFound
	}

	if err := apply(user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *MemoryStore) SaveProfile(ctx context.Context, rec *core.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.profiles[rec.ID] = &cp

	return nil
}

func (s *MemoryStore) ProfilesByUser(ctx context.Context, userID string) ([]*core.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*core.ProfileRecord
	for _, rec := range s.profiles {
		if rec.UserID == userID {
			cp := *rec
			records = append(records, &cp)
		}
	}

	return records, nil
}
