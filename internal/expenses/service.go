// Package expenses manages shared expenses, their equal splits and the
// running owes/owed balances on member profiles.
package expenses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrSplitNotFound     = errors.New("expense split not found")
	ErrItemRequired      = errors.New("expense item is required")
	ErrInvalidCost       = errors.New("expense cost must be positive")
)

// CreateRequest carries the caller-supplied fields of a new expense.
// Participants lists every member sharing the cost; the payer may be
// included and is filtered out.
type CreateRequest struct {
	Item         string
	Cost         float64
	Score        int
	Participants []string
}

// Service records expenses, splits them equally and keeps each member's
// amount_owed / amount_owed_to_user balances consistent with the set of
// unpaid splits.
type Service struct {
	store storage.Store
}

// NewService creates an expense service backed by the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Create records an expense paid by payerID and splits it equally among
// the payer and the listed participants. Each non-payer participant gets
// one unpaid split of cost/(participants+1); the payer's own share is
// implicit and never materialized as a split.
func (s *Service) Create(ctx context.Context, householdID, payerID string, req CreateRequest) (*models.Expense, error) {
	if _, err := s.store.GetHouseholdByID(ctx, householdID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}

	item := strings.TrimSpace(req.Item)
	if item == "" {
		return nil, ErrItemRequired
	}
	if req.Cost <= 0 {
		return nil, ErrInvalidCost
	}

	participants := dedupe(req.Participants, payerID)
	share := req.Cost / float64(len(participants)+1)

	expense := &models.Expense{
		HouseholdID: householdID,
		PayerID:     payerID,
		Item:        item,
		Cost:        req.Cost,
		Score:       req.Score,
	}
	splits := make([]models.ExpenseSplit, len(participants))
	for i, profileID := range participants {
		splits[i] = models.ExpenseSplit{
			ProfileID: profileID,
			Amount:    share,
		}
	}

	if err := s.store.CreateExpense(ctx, expense, splits); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return s.store.GetExpenseByID(ctx, expense.ID)
}

// Update renames or reprices an expense. Splits and balances are left as
// they were; the new cost only affects future reporting totals.
func (s *Service) Update(ctx context.Context, expenseID, item string, cost float64) (*models.Expense, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, ErrItemRequired
	}
	if cost <= 0 {
		return nil, ErrInvalidCost
	}

	if _, err := s.store.GetExpenseByID(ctx, expenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	if err := s.store.UpdateExpense(ctx, expenseID, item, cost); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return s.store.GetExpenseByID(ctx, expenseID)
}

// Remove deletes an expense. The balance effect of every still-unpaid
// split is reversed; settled splits stay settled and are not refunded.
func (s *Service) Remove(ctx context.Context, expenseID string) error {
	if _, err := s.store.GetExpenseByID(ctx, expenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	if err := s.store.RemoveExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to remove expense: %w", err)
	}
	return nil
}

// Get returns an expense with its splits.
func (s *Service) Get(ctx context.Context, expenseID string) (*models.Expense, []models.ExpenseSplit, error) {
	expense, err := s.store.GetExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrExpenseNotFound
		}
		return nil, nil, err
	}
	splits, err := s.store.GetSplitsByExpense(ctx, expenseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load splits: %w", err)
	}
	return expense, splits, nil
}

// ListByHousehold returns a household's expenses, newest first.
func (s *Service) ListByHousehold(ctx context.Context, householdID string) ([]models.Expense, error) {
	return s.store.GetExpensesByHousehold(ctx, householdID)
}

// SplitsForProfile returns the splits a profile holds across a
// household's expenses.
func (s *Service) SplitsForProfile(ctx context.Context, profileID, householdID string) ([]models.ExpenseSplit, error) {
	return s.store.GetSplitsByProfileAndHousehold(ctx, profileID, householdID)
}

// MarkSplitPaid settles a split, moving its amount off both the ower's
// and the payer's balances. Settling an already-paid split is a no-op.
func (s *Service) MarkSplitPaid(ctx context.Context, splitID string) error {
	return s.setSplitPaid(ctx, splitID, true)
}

// MarkSplitUnpaid reopens a settled split, restoring its amount on both
// balances. Reopening an unpaid split is a no-op.
func (s *Service) MarkSplitUnpaid(ctx context.Context, splitID string) error {
	return s.setSplitPaid(ctx, splitID, false)
}

func (s *Service) setSplitPaid(ctx context.Context, splitID string, paid bool) error {
	split, err := s.store.GetSplitByID(ctx, splitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSplitNotFound
		}
		return err
	}
	if _, err := s.store.GetExpenseByID(ctx, split.ExpenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	if err := s.store.SetSplitPaid(ctx, splitID, paid); err != nil {
		return fmt.Errorf("failed to update split: %w", err)
	}
	return nil
}

// MonthlyTotal sums a household's expenses recorded since the start of
// the current calendar month in the given location.
func (s *Service) MonthlyTotal(ctx context.Context, householdID string, loc *time.Location) (float64, error) {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	return s.store.SumExpensesSince(ctx, householdID, startOfMonth.Unix())
}

// dedupe removes duplicates and the payer from the participant list,
// preserving order.
func dedupe(participants []string, payerID string) []string {
	seen := make(map[string]bool, len(participants))
	out := make([]string, 0, len(participants))
	for _, id := range participants {
		if id == payerID || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
