package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

// CreateSchedule persists a profile's weekly schedule.
func (s *SQLiteStore) CreateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO schedules (id, profile_id, weekly) VALUES (?, ?, ?)`,
		schedule.ID, schedule.ProfileID, schedule.Weekly,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// GetScheduleByProfile retrieves a profile's weekly schedule.
func (s *SQLiteStore) GetScheduleByProfile(ctx context.Context, profileID string) (*models.Schedule, error) {
	sched := &models.Schedule{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, profile_id, weekly FROM schedules WHERE profile_id = ?`,
		profileID).Scan(&sched.ID, &sched.ProfileID, &sched.Weekly)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schedule for %s: %w", profileID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return sched, nil
}

// UpdateScheduleByProfile replaces a profile's weekly payload.
func (s *SQLiteStore) UpdateScheduleByProfile(ctx context.Context, profileID, weekly string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE schedules SET weekly = ? WHERE profile_id = ?`, weekly, profileID)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("schedule for %s: %w", profileID, storage.ErrNotFound)
	}
	return nil
}
