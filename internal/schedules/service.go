// Package schedules stores each profile's weekly availability document.
package schedules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidWeekly    = errors.New("weekly schedule must be valid JSON")
)

// Service stores and retrieves weekly availability, one document per
// profile. The weekly payload is opaque JSON owned by the client.
type Service struct {
	store storage.Store
}

// NewService creates a schedule service backed by the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Get returns a profile's weekly schedule.
func (s *Service) Get(ctx context.Context, profileID string) (*models.Schedule, error) {
	schedule, err := s.store.GetScheduleByProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

// Put creates or replaces a profile's weekly schedule.
func (s *Service) Put(ctx context.Context, profileID, weekly string) (*models.Schedule, error) {
	if !json.Valid([]byte(weekly)) {
		return nil, ErrInvalidWeekly
	}

	_, err := s.store.GetScheduleByProfile(ctx, profileID)
	switch {
	case err == nil:
		if err := s.store.UpdateScheduleByProfile(ctx, profileID, weekly); err != nil {
			return nil, fmt.Errorf("failed to update schedule: %w", err)
		}
	case errors.Is(err, storage.ErrNotFound):
		schedule := &models.Schedule{ProfileID: profileID, Weekly: weekly}
		if err := s.store.CreateSchedule(ctx, schedule); err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
	default:
		return nil, err
	}
	return s.store.GetScheduleByProfile(ctx, profileID)
}
