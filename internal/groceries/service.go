// Package groceries manages a household's shared grocery list.
package groceries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrGroceryNotFound   = errors.New("grocery item not found")
	ErrNameRequired      = errors.New("grocery name is required")
)

// Service manages grocery list entries.
type Service struct {
	store storage.Store
}

// NewService creates a grocery service backed by the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Add appends an item to a household's grocery list.
func (s *Service) Add(ctx context.Context, householdID, addedBy, name string, cost float64) (*models.Grocery, error) {
	if _, err := s.store.GetHouseholdByID(ctx, householdID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	grocery := &models.Grocery{
		HouseholdID: householdID,
		ProfileID:   addedBy,
		Name:        name,
		Cost:        cost,
	}
	if err := s.store.CreateGrocery(ctx, grocery); err != nil {
		return nil, fmt.Errorf("failed to add grocery: %w", err)
	}
	return grocery, nil
}

// List returns a household's grocery items.
func (s *Service) List(ctx context.Context, householdID string) ([]models.Grocery, error) {
	return s.store.GetGroceriesByHousehold(ctx, householdID)
}

// Update renames or reprices a grocery item.
func (s *Service) Update(ctx context.Context, grocery *models.Grocery) error {
	name := strings.TrimSpace(grocery.Name)
	if name == "" {
		return ErrNameRequired
	}
	grocery.Name = name
	if err := s.store.UpdateGrocery(ctx, grocery); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGroceryNotFound
		}
		return err
	}
	return nil
}

// Remove deletes a grocery item from the list.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteGrocery(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGroceryNotFound
		}
		return err
	}
	return nil
}
