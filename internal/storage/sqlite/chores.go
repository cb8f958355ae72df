package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

const choreColumns = "id, household_id, title, description, due_at, start_date, end_date, repeat_rule, rotate_enabled, rotate_with, assignee_id, impact, created_at"

func scanChore(row interface{ Scan(...any) error }) (*models.Chore, error) {
	c := &models.Chore{}
	var dueAt sql.NullInt64
	var startDate, endDate, rotateWith, assigneeID sql.NullString
	err := row.Scan(&c.ID, &c.HouseholdID, &c.Title, &c.Description,
		&dueAt, &startDate, &endDate, &c.RepeatRule, &c.RotateEnabled,
		&rotateWith, &assigneeID, &c.Impact, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.DueAt = dueAt.Int64
	c.StartDate = startDate.String
	c.EndDate = endDate.String
	c.AssigneeID = assigneeID.String
	if rotateWith.Valid && rotateWith.String != "" {
		if err := json.Unmarshal([]byte(rotateWith.String), &c.RotateWith); err != nil {
			return nil, fmt.Errorf("failed to decode rotate_with: %w", err)
		}
	}
	return c, nil
}

// nullable turns Go zero values into SQL NULLs for optional columns.
func nullable[T comparable](v T) interface{} {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// CreateChore persists a chore and its household link row in one
// transaction. The link row is the unit removed on completion, keyed by
// the profile receiving completion credit.
func (s *SQLiteStore) CreateChore(ctx context.Context, chore *models.Chore, linkProfileID string) error {
	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	if chore.CreatedAt == 0 {
		chore.CreatedAt = time.Now().Unix()
	}

	// rotate_with is stored as a JSON array, NULL when absent.
	var rotateWith interface{}
	if len(chore.RotateWith) > 0 {
		encoded, err := json.Marshal(chore.RotateWith)
		if err != nil {
			return fmt.Errorf("failed to encode rotate_with: %w", err)
		}
		rotateWith = string(encoded)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chores (`+choreColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chore.ID, chore.HouseholdID, chore.Title, chore.Description,
		nullable(chore.DueAt), nullable(chore.StartDate), nullable(chore.EndDate),
		chore.RepeatRule, chore.RotateEnabled, rotateWith,
		nullable(chore.AssigneeID), chore.Impact, chore.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chore: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chore_links (id, household_id, chore_id, profile_id) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), chore.HouseholdID, chore.ID, linkProfileID,
	)
	if err != nil {
		return fmt.Errorf("failed to link chore to household: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetChoreByID retrieves a chore by its ID.
func (s *SQLiteStore) GetChoreByID(ctx context.Context, id string) (*models.Chore, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+choreColumns+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chore %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chore: %w", err)
	}
	return c, nil
}

// GetChoresByHousehold lists a household's chores, newest first.
func (s *SQLiteStore) GetChoresByHousehold(ctx context.Context, householdID string) ([]models.Chore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+choreColumns+` FROM chores WHERE household_id = ? ORDER BY created_at DESC, id`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chores: %w", err)
	}
	defer rows.Close()

	var chores []models.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chores: %w", err)
	}
	return chores, nil
}

// GetLinkedProfileID returns the profile keyed on the link row for
// (householdID, choreID).
func (s *SQLiteStore) GetLinkedProfileID(ctx context.Context, householdID, choreID string) (string, error) {
	var profileID string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_id FROM chore_links WHERE household_id = ? AND chore_id = ?`,
		householdID, choreID).Scan(&profileID)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("chore link %s/%s: %w", householdID, choreID, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get linked profile: %w", err)
	}
	return profileID, nil
}

// UnlinkChore deletes the household link row for a chore and reports how
// many rows were removed. Completion is idempotent at the caller: zero
// rows means the chore was already completed.
func (s *SQLiteStore) UnlinkChore(ctx context.Context, householdID, choreID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chore_links WHERE household_id = ? AND chore_id = ?`,
		householdID, choreID)
	if err != nil {
		return 0, fmt.Errorf("failed to unlink chore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}
