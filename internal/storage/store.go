// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/homehero/homehero/internal/models"
)

// ErrNotFound is returned (wrapped) by lookups that miss. Callers match
// it with errors.Is and translate it to their own domain error.
var ErrNotFound = errors.New("not found")

// Store defines the interface for HomeHero storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Methods that touch several rows (chore creation, expense creation and
// removal, split paid-toggling, member removal, invite acceptance) commit
// all their writes in a single transaction; partial application is never
// observable.
type Store interface {
	// CreateProfile persists a new profile. A missing ID or CreatedAt is
	// populated by the store.
	CreateProfile(ctx context.Context, profile *models.Profile) error

	// GetProfileByID retrieves a profile by its ID.
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)

	// GetProfileByEmail retrieves a profile by email (case-insensitive).
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)

	// SearchProfilesByEmail returns up to limit profiles whose email
	// contains the fragment, ordered by email.
	SearchProfilesByEmail(ctx context.Context, fragment string, limit int) ([]models.Profile, error)

	// IncrementProfileScore adds delta to a profile's score.
	IncrementProfileScore(ctx context.Context, profileID string, delta int) error

	// CreateHousehold persists a new household.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHouseholdByID retrieves a household by its ID.
	GetHouseholdByID(ctx context.Context, id string) (*models.Household, error)

	// GetHouseholdByHomeCode retrieves a household by its 6-digit code.
	GetHouseholdByHomeCode(ctx context.Context, code string) (*models.Household, error)

	// GetHouseholdsForProfile lists the households a profile belongs to.
	GetHouseholdsForProfile(ctx context.Context, profileID string) ([]models.Household, error)

	// AddMember links a profile to a household. Adding an existing
	// member is a no-op.
	AddMember(ctx context.Context, householdID, profileID string) error

	// GetMembersOrderedByName lists a household's members in stable
	// name order. This ordering is the assignment engine's roster order.
	GetMembersOrderedByName(ctx context.Context, householdID string) ([]models.Profile, error)

	// RemoveMember removes a profile from a household and deletes the
	// household in the same transaction when no members remain.
	RemoveMember(ctx context.Context, householdID, profileID string) error

	// CreateInvite persists a household invite.
	CreateInvite(ctx context.Context, invite *models.HouseholdInvite) error

	// GetInviteByID retrieves an invite by its ID.
	GetInviteByID(ctx context.Context, id string) (*models.HouseholdInvite, error)

	// GetInvitesForProfile lists invites addressed to a profile by ID or
	// by email.
	GetInvitesForProfile(ctx context.Context, profileID, email string) ([]models.HouseholdInvite, error)

	// UpdateInviteStatus sets an invite's status.
	UpdateInviteStatus(ctx context.Context, id, status string) error

	// AcceptInvite marks the invite accepted and adds the profile to the
	// household in one transaction.
	AcceptInvite(ctx context.Context, inviteID, householdID, profileID string) error

	// CreateChore persists a chore and its household link row (keyed by
	// linkProfileID) in one transaction.
	CreateChore(ctx context.Context, chore *models.Chore, linkProfileID string) error

	// GetChoreByID retrieves a chore by its ID.
	GetChoreByID(ctx context.Context, id string) (*models.Chore, error)

	// GetChoresByHousehold lists a household's chores, newest first.
	GetChoresByHousehold(ctx context.Context, householdID string) ([]models.Chore, error)

	// GetLinkedProfileID returns the profile keyed on the household link
	// row for (householdID, choreID).
	GetLinkedProfileID(ctx context.Context, householdID, choreID string) (string, error)

	// UnlinkChore deletes the household link row and reports how many
	// rows were removed. Zero means the chore was already completed.
	UnlinkChore(ctx context.Context, householdID, choreID string) (int64, error)

	// CreateExpense persists an expense with its splits and applies the
	// matching balance increments (each owing profile's amount_owed, the
	// payer's amount_owed_to_user) in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error

	// GetExpenseByID retrieves an expense by its ID.
	GetExpenseByID(ctx context.Context, id string) (*models.Expense, error)

	// GetExpensesByHousehold lists a household's expenses, newest first.
	GetExpensesByHousehold(ctx context.Context, householdID string) ([]models.Expense, error)

	// UpdateExpense mutates an expense's item and cost fields only.
	// Existing splits and balances are not recomputed.
	UpdateExpense(ctx context.Context, id, item string, cost float64) error

	// RemoveExpense reverses the balance effect of every still-unpaid
	// non-payer split, deletes all splits and deletes the expense in one
	// transaction.
	RemoveExpense(ctx context.Context, id string) error

	// GetSplitsByExpense lists the splits of an expense.
	GetSplitsByExpense(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error)

	// GetSplitByID retrieves a split by its ID.
	GetSplitByID(ctx context.Context, id string) (*models.ExpenseSplit, error)

	// GetSplitsByProfileAndHousehold lists a profile's splits across a
	// household's expenses.
	GetSplitsByProfileAndHousehold(ctx context.Context, profileID, householdID string) ([]models.ExpenseSplit, error)

	// SetSplitPaid flips a split's paid flag and applies the inverse
	// balance delta (when the owing profile is not the payer) in one
	// transaction. A split already in the target state is left untouched.
	SetSplitPaid(ctx context.Context, splitID string, paid bool) error

	// SumExpensesSince totals the cost of a household's expenses created
	// at or after the given Unix timestamp.
	SumExpensesSince(ctx context.Context, householdID string, since int64) (float64, error)

	// CreateGrocery persists a grocery item.
	CreateGrocery(ctx context.Context, grocery *models.Grocery) error

	// GetGroceriesByHousehold lists a household's grocery items.
	GetGroceriesByHousehold(ctx context.Context, householdID string) ([]models.Grocery, error)

	// UpdateGrocery mutates a grocery item's name and cost.
	UpdateGrocery(ctx context.Context, grocery *models.Grocery) error

	// DeleteGrocery removes a grocery item.
	DeleteGrocery(ctx context.Context, id string) error

	// CreateSchedule persists a profile's weekly schedule.
	CreateSchedule(ctx context.Context, schedule *models.Schedule) error

	// GetScheduleByProfile retrieves a profile's weekly schedule.
	GetScheduleByProfile(ctx context.Context, profileID string) (*models.Schedule, error)

	// UpdateScheduleByProfile replaces a profile's weekly payload.
	UpdateScheduleByProfile(ctx context.Context, profileID, weekly string) error

	// Close releases any resources held by the store.
	Close() error
}
