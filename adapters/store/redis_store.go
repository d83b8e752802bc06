package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wealthpath/onboard/core"
)

// RedisStore persists users and profile records as JSON documents.
// Refresh-token updates run inside an optimistic WATCH transaction so
// a stale token loses the race instead of clobbering a newer value.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "onboarding:",
	}
}

func (s *RedisStore) userKey(id string) string { return s.prefix + "user:" + id }

func (s *RedisStore) emailKey(email string) string {
	return s.prefix + "email:" + core.NormalizeEmail(email)
}

func (s *RedisStore) profileKey(id string) string { return s.prefix + "profile:" + id }

func (s *RedisStore) userProfilesKey(userID string) string {
	return s.prefix + "profiles:" + userID
}

func (s *RedisStore) CreateUser(ctx context.Context, user *core.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	// The email index doubles as the uniqueness guard.
	ok, err := s.client.SetNX(ctx, s.emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve email: %w", err)
	}
	if !ok {
		return core.ErrEmailTaken
	}

	if err := s.client.Set(ctx, s.userKey(user.ID), raw, 0).Err(); err != nil {
		s.client.Del(ctx, s.emailKey(user.Email))
		return fmt.Errorf("failed to store user: %w", err)
	}

	return nil
}

func (s *RedisStore) UserByEmail(ctx context.Context, email string) (*core.User, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve email: %w", err)
	}

	return s.UserByID(ctx, id)
}

func (s *RedisStore) UserByID(ctx context.Context, id string) (*core.User, error) {
	raw, err := s.client.Get(ctx, s.userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var user core.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

func (s *RedisStore) SetRefreshToken(ctx context.Context, userID, token string) error {
	return s.updateUser(ctx, userID, func(user *core.User) error {
		user.RefreshToken = token
		return nil
	})
}

func (s *RedisStore) SwapRefreshToken(ctx context.Context, userID, current, next string) error {
	return s.updateUser(ctx, userID, func(user *core.User) error {
		if user.RefreshToken != current {
			return core.ErrStaleRefreshToken
		}
		user.RefreshToken = next
		return nil
	})
}

func (s *RedisStore) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.updateUser(ctx, userID, func(user *core.User) error {
		user.RefreshToken = ""
		return nil
	})
}

// updateUser applies a mutation to the user document inside a WATCH
// transaction. A concurrent write to the same user aborts the exec and
// surfaces as redis.TxFailedErr.
func (s *RedisStore) updateUser(ctx context.Context, userID string, apply func(*core.User) error) error {
	key := s.userKey(userID)

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return core.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		var user core.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return fmt.Errorf("failed to decode user: %w", err)
		}

		if err := apply(&user); err != nil {
			return err
		}
		user.UpdatedAt = time.Now().UTC()

		out, err := json.Marshal(&user)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}, key)
}

func (s *RedisStore) SaveProfile(ctx context.Context, rec *core.ProfileRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode profile record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.profileKey(rec.ID), raw, 0)
	pipe.SAdd(ctx, s.userProfilesKey(rec.UserID), rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store profile record: %w", err)
	}

	return nil
}

func (s *RedisStore) ProfilesByUser(ctx context.Context, userID string) ([]*core.ProfileRecord, error) {
	ids, err := s.client.SMembers(ctx, s.userProfilesKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list profile records: %w", err)
	}

	var records []*core.ProfileRecord
	for _, id := range ids {
		raw, err := s.client.Get(ctx, s.profileKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load profile record: %w", err)
		}

		var rec core.ProfileRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode profile record: %w", err)
		}
		records = append(records, &rec)
	}

	return records, nil
}
