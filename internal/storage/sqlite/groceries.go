package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

// CreateGrocery persists a grocery item.
func (s *SQLiteStore) CreateGrocery(ctx context.Context, grocery *models.Grocery) error {
	if grocery.ID == "" {
		grocery.ID = uuid.New().String()
	}
	if grocery.CreatedAt == 0 {
		grocery.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO groceries (id, household_id, profile_id, name, cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		grocery.ID, grocery.HouseholdID, grocery.ProfileID,
		grocery.Name, grocery.Cost, grocery.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create grocery: %w", err)
	}
	return nil
}

// GetGroceriesByHousehold lists a household's grocery items, newest first.
func (s *SQLiteStore) GetGroceriesByHousehold(ctx context.Context, householdID string) ([]models.Grocery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, household_id, profile_id, name, cost, created_at
		 FROM groceries WHERE household_id = ? ORDER BY created_at DESC, id`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get groceries: %w", err)
	}
	defer rows.Close()

	var groceries []models.Grocery
	for rows.Next() {
		var g models.Grocery
		if err := rows.Scan(&g.ID, &g.HouseholdID, &g.ProfileID, &g.Name, &g.Cost, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grocery: %w", err)
		}
		groceries = append(groceries, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groceries: %w", err)
	}
	return groceries, nil
}

// UpdateGrocery mutates a grocery item's name and cost.
func (s *SQLiteStore) UpdateGrocery(ctx context.Context, grocery *models.Grocery) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE groceries SET name = ?, cost = ? WHERE id = ?`,
		grocery.Name, grocery.Cost, grocery.ID)
	if err != nil {
		return fmt.Errorf("failed to update grocery: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("grocery %s: %w", grocery.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteGrocery removes a grocery item.
func (s *SQLiteStore) DeleteGrocery(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groceries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete grocery: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("grocery %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
