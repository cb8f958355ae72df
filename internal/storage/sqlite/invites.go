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

func scanInvite(row interface{ Scan(...any) error }) (*models.HouseholdInvite, error) {
	inv := &models.HouseholdInvite{}
	var inviteeID sql.NullString
	err := row.Scan(&inv.ID, &inv.HouseholdID, &inv.InviterProfileID,
		&inviteeID, &inv.InviteeEmail, &inv.Status, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	if inviteeID.Valid {
		inv.InviteeProfileID = inviteeID.String
	}
	return inv, nil
}

// CreateInvite persists a household invite.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.HouseholdInvite) error {
	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}
	if invite.Status == "" {
		invite.Status = models.InviteStatusPending
	}

	var inviteeID interface{}
	if invite.InviteeProfileID != "" {
		inviteeID = invite.InviteeProfileID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO household_invites (id, household_id, inviter_id, invitee_id, invitee_email, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		invite.ID, invite.HouseholdID, invite.InviterProfileID,
		inviteeID, invite.InviteeEmail, invite.Status, invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

// GetInviteByID retrieves an invite by its ID.
func (s *SQLiteStore) GetInviteByID(ctx context.Context, id string) (*models.HouseholdInvite, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, household_id, inviter_id, invitee_id, invitee_email, status, created_at
		 FROM household_invites WHERE id = ?`, id)
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invite %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	return inv, nil
}

// GetInvitesForProfile lists invites addressed to a profile by ID or email.
func (s *SQLiteStore) GetInvitesForProfile(ctx context.Context, profileID, email string) ([]models.HouseholdInvite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, household_id, inviter_id, invitee_id, invitee_email, status, created_at
		 FROM household_invites
		 WHERE invitee_id = ? OR invitee_email = ? COLLATE NOCASE
		 ORDER BY created_at DESC`,
		profileID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get invites: %w", err)
	}
	defer rows.Close()

	var invites []models.HouseholdInvite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

// UpdateInviteStatus sets an invite's status.
func (s *SQLiteStore) UpdateInviteStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE household_invites SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("invite %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// AcceptInvite marks the invite accepted and adds the profile to the
// household atomically.
func (s *SQLiteStore) AcceptInvite(ctx context.Context, inviteID, householdID, profileID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE household_invites SET status = ? WHERE id = ?`,
		models.InviteStatusAccepted, inviteID)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("invite %s: %w", inviteID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO household_members (id, household_id, profile_id) VALUES (?, ?, ?)`,
		uuid.New().String(), householdID, profileID)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
