package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wealthpath/onboard/core"
	"github.com/wealthpath/onboard/ports"
)

// ProfileService persists onboarding form submissions. Every section
// takes the same path: persist the record, then mark it complete. The
// sections are independent of each other.
type ProfileService struct {
	profiles ports.ProfileStore
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles ports.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Submit stores a new record for the given section and marks it
// complete once the write went through.
func (s *ProfileService) Submit(ctx context.Context, userID string, section core.Section, data any) (*core.ProfileRecord, error) {
	rec := &core.ProfileRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		Section:   section,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.profiles.SaveProfile(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save %s record: %w", section, err)
	}

	rec.Completed = true
	if err := s.profiles.SaveProfile(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to complete %s record: %w", section, err)
	}

	return rec, nil
}

// Records lists everything a user has submitted so far.
func (s *ProfileService) Records(ctx context.Context, userID string) ([]*core.ProfileRecord, error) {
	return s.profiles.ProfilesByUser(ctx, userID)
}
