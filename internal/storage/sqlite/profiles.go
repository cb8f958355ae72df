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

const profileColumns = "id, name, email, password_hash, score, amount_owed, amount_owed_to_user, created_at"

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash,
		&p.Score, &p.AmountOwed, &p.AmountOwedToUser, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProfile inserts a new profile into the database.
func (s *SQLiteStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt == 0 {
		profile.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Name, profile.Email, profile.PasswordHash,
		profile.Score, profile.AmountOwed, profile.AmountOwedToUser, profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfileByID retrieves a profile by its ID.
func (s *SQLiteStore) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfileByEmail retrieves a profile by its email address. The email
// column collates case-insensitively.
func (s *SQLiteStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return p, nil
}

// SearchProfilesByEmail returns profiles whose email contains the fragment.
func (s *SQLiteStore) SearchProfilesByEmail(ctx context.Context, fragment string, limit int) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE email LIKE '%' || ? || '%'
		 ORDER BY email ASC LIMIT ?`,
		fragment, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// IncrementProfileScore adds delta to a profile's score.
func (s *SQLiteStore) IncrementProfileScore(ctx context.Context, profileID string, delta int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET score = score + ? WHERE id = ?`, delta, profileID)
	if err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("profile %s: %w", profileID, storage.ErrNotFound)
	}
	return nil
}
