package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

const householdColumns = "id, name, address, home_code, score, created_at"

func scanHousehold(row interface{ Scan(...any) error }) (*models.Household, error) {
	h := &models.Household{}
	err := row.Scan(&h.ID, &h.Name, &h.Address, &h.HomeCode, &h.Score, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// CreateHousehold inserts a new household into the database.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO households (`+householdColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		household.ID, household.Name, household.Address,
		household.HomeCode, household.Score, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create household: %w", err)
	}
	return nil
}

// GetHouseholdByID retrieves a household by its ID.
func (s *SQLiteStore) GetHouseholdByID(ctx context.Context, id string) (*models.Household, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+householdColumns+` FROM households WHERE id = ?`, id)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("household %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return h, nil
}

// GetHouseholdByHomeCode retrieves a household by its 6-digit home code.
func (s *SQLiteStore) GetHouseholdByHomeCode(ctx context.Context, code string) (*models.Household, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+householdColumns+` FROM households WHERE home_code = ?`, code)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("home code %s: %w", code, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household by home code: %w", err)
	}
	return h, nil
}

// GetHouseholdsForProfile lists the households a profile is a member of.
func (s *SQLiteStore) GetHouseholdsForProfile(ctx context.Context, profileID string) ([]models.Household, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.id, h.name, h.address, h.home_code, h.score, h.created_at
		 FROM households h
		 JOIN household_members m ON m.household_id = h.id
		 WHERE m.profile_id = ?
		 ORDER BY h.created_at DESC`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get households for profile: %w", err)
	}
	defer rows.Close()

	var households []models.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		households = append(households, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate households: %w", err)
	}
	return households, nil
}

// AddMember links a profile to a household. Re-adding an existing member
// is a no-op.
func (s *SQLiteStore) AddMember(ctx context.Context, householdID, profileID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO household_members (id, household_id, profile_id) VALUES (?, ?, ?)`,
		uuid.New().String(), householdID, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// GetMembersOrderedByName lists a household's members in name order.
// This order is the stable roster the assignment engine cycles through.
func (s *SQLiteStore) GetMembersOrderedByName(ctx context.Context, householdID string) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.email, p.password_hash, p.score, p.amount_owed, p.amount_owed_to_user, p.created_at
		 FROM profiles p
		 JOIN household_members m ON m.profile_id = p.id
		 WHERE m.household_id = ?
		 ORDER BY p.name ASC, p.id ASC`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// RemoveMember removes a profile from a household. When the departing
// profile was the last member the household row is deleted in the same
// transaction, so an empty household is never observable.
func (s *SQLiteStore) RemoveMember(ctx context.Context, householdID, profileID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM household_members WHERE household_id = ? AND profile_id = ?`,
		householdID, profileID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("membership %s/%s: %w", householdID, profileID, storage.ErrNotFound)
	}

	var remaining int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM household_members WHERE household_id = ?`,
		householdID).Scan(&remaining)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	if remaining == 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM households WHERE id = ?`, householdID); err != nil {
			return fmt.Errorf("failed to delete empty household: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
