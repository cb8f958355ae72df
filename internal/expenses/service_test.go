package expenses

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
	"github.com/homehero/homehero/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustProfile(t *testing.T, store storage.Store, name string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		ID:    uuid.NewString(),
		Name:  name,
		Email: name + "@example.com",
	}
	if err := store.CreateProfile(context.Background(), p); err != nil {
		t.Fatalf("failed to create profile %s: %v", name, err)
	}
	return p
}

func mustHousehold(t *testing.T, store storage.Store, members ...*models.Profile) *models.Household {
	t.Helper()
	h := &models.Household{
		ID:       uuid.NewString(),
		Address:  "12 Test Lane",
		HomeCode: "654321",
	}
	if err := store.CreateHousehold(context.Background(), h); err != nil {
		t.Fatalf("failed to create household: %v", err)
	}
	for _, m := range members {
		if err := store.AddMember(context.Background(), h.ID, m.ID); err != nil {
			t.Fatalf("failed to add member: %v", err)
		}
	}
	return h
}

func checkBalance(t *testing.T, store storage.Store, profileID string, wantOwed, wantOwedToUser float64) {
	t.Helper()
	p, err := store.GetProfileByID(context.Background(), profileID)
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if !almostEqual(p.AmountOwed, wantOwed) {
		t.Errorf("amount owed = %.2f, want %.2f", p.AmountOwed, wantOwed)
	}
	if !almostEqual(p.AmountOwedToUser, wantOwedToUser) {
		t.Errorf("amount owed to user = %.2f, want %.2f", p.AmountOwedToUser, wantOwedToUser)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	bob := mustProfile(t, store, "Bob")
	carol := mustProfile(t, store, "Carol")
	household := mustHousehold(t, store, alice, bob, carol)

	svc := NewService(store)

	expense, err := svc.Create(ctx, household.ID, alice.ID, CreateRequest{
		Item:         "Groceries",
		Cost:         90,
		Participants: []string{bob.ID, carol.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	splits, err := store.GetSplitsByExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to load splits: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(splits))
	}
	for _, split := range splits {
		if !almostEqual(split.Amount, 30) {
			t.Errorf("split amount = %.2f, want 30", split.Amount)
		}
		if split.Paid {
			t.Error("new split should be unpaid")
		}
		if split.ProfileID == alice.ID {
			t.Error("payer should not hold a split")
		}
	}

	checkBalance(t, store, alice.ID, 0, 60)
	checkBalance(t, store, bob.ID, 30, 0)
	checkBalance(t, store, carol.ID, 30, 0)
}

func TestService_Create_PayerInParticipants(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	bob := mustProfile(t, store, "Bob")
	household := mustHousehold(t, store, alice, bob)

	svc := NewService(store)

	// Listing the payer (twice, even) changes nothing: one other
	// participant means a two-way split.
	expense, err := svc.Create(ctx, household.ID, alice.ID, CreateRequest{
		Item:         "Pizza",
		Cost:         20,
		Participants: []string{alice.ID, bob.ID, alice.ID, bob.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	splits, err := store.GetSplitsByExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to load splits: %v", err)
	}
	if len(splits) != 1 {
		t.Fatalf("got %d splits, want 1", len(splits))
	}
	if !almostEqual(splits[0].Amount, 10) {
		t.Errorf("split amount = %.2f, want 10", splits[0].Amount)
	}
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	household := mustHousehold(t, store, alice)

	svc := NewService(store)

	tests := []struct {
		name        string
		householdID string
		req         CreateRequest
		wantErr     error
	}{
		{
			name:        "zero cost",
			householdID: household.ID,
			req:         CreateRequest{Item: "Soap", Cost: 0},
			wantErr:     ErrInvalidCost,
		},
		{
			name:        "negative cost",
			householdID: household.ID,
			req:         CreateRequest{Item: "Soap", Cost: -5},
			wantErr:     ErrInvalidCost,
		},
		{
			name:        "blank item",
			householdID: household.ID,
			req:         CreateRequest{Item: "  ", Cost: 10},
			wantErr:     ErrItemRequired,
		},
		{
			name:        "unknown household",
			householdID: uuid.NewString(),
			req:         CreateRequest{Item: "Soap", Cost: 10},
			wantErr:     ErrHouseholdNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.householdID, alice.ID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_MarkSplitPaid(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	bob := mustProfile(t, store, "Bob")
	household := mustHousehold(t, store, alice, bob)

	svc := NewService(store)

	expense, err := svc.Create(ctx, household.ID, alice.ID, CreateRequest{
		Item:         "Utilities",
		Cost:         50,
		Participants: []string{bob.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	splits, err := store.GetSplitsByExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to load splits: %v", err)
	}
	splitID := splits[0].ID

	if err := svc.MarkSplitPaid(ctx, splitID); err != nil {
		t.Fatalf("MarkSplitPaid() error = %v", err)
	}
	checkBalance(t, store, bob.ID, 0, 0)
	checkBalance(t, store, alice.ID, 0, 0)

	// Paying again is a no-op, not a double subtraction.
	if err := svc.MarkSplitPaid(ctx, splitID); err != nil {
		t.Fatalf("MarkSplitPaid() second call error = %v", err)
	}
	checkBalance(t, store, bob.ID, 0, 0)

	// Reopening restores both balances.
	if err := svc.MarkSplitUnpaid(ctx, splitID); err != nil {
		t.Fatalf("MarkSplitUnpaid() error = %v", err)
	}
	checkBalance(t, store, bob.ID, 25, 0)
	checkBalance(t, store, alice.ID, 0, 25)

	if err := svc.MarkSplitPaid(ctx, uuid.NewString()); !errors.Is(err, ErrSplitNotFound) {
		t.Fatalf("MarkSplitPaid() error = %v, want %v", err, ErrSplitNotFound)
	}
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	bob := mustProfile(t, store, "Bob")
	carol := mustProfile(t, store, "Carol")
	household := mustHousehold(t, store, alice, bob, carol)

	svc := NewService(store)

	expense, err := svc.Create(ctx, household.ID, alice.ID, CreateRequest{
		Item:         "Furniture",
		Cost:         90,
		Participants: []string{bob.ID, carol.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	splits, err := store.GetSplitsByExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to load splits: %v", err)
	}

	// Bob settles; Carol does not.
	var bobSplit string
	for _, split := range splits {
		if split.ProfileID == bob.ID {
			bobSplit = split.ID
		}
	}
	if err := svc.MarkSplitPaid(ctx, bobSplit); err != nil {
		t.Fatalf("MarkSplitPaid() error = %v", err)
	}

	if err := svc.Remove(ctx, expense.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// Only Carol's unpaid share is reversed. Bob's settled share stays
	// settled.
	checkBalance(t, store, carol.ID, 0, 0)
	checkBalance(t, store, bob.ID, 0, 0)
	checkBalance(t, store, alice.ID, 0, 0)

	if _, _, err := svc.Get(ctx, expense.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Get() after remove error = %v, want %v", err, ErrExpenseNotFound)
	}
	if err := svc.Remove(ctx, expense.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Remove() twice error = %v, want %v", err, ErrExpenseNotFound)
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	bob := mustProfile(t, store, "Bob")
	household := mustHousehold(t, store, alice, bob)

	svc := NewService(store)

	expense, err := svc.Create(ctx, household.ID, alice.ID, CreateRequest{
		Item:         "Internet",
		Cost:         60,
		Participants: []string{bob.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(ctx, expense.ID, "Internet + phone", 80)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Item != "Internet + phone" || !almostEqual(updated.Cost, 80) {
		t.Errorf("updated = (%s, %.2f), want (Internet + phone, 80)", updated.Item, updated.Cost)
	}

	// Splits keep the original share; update does not recompute.
	splits, err := store.GetSplitsByExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to load splits: %v", err)
	}
	if !almostEqual(splits[0].Amount, 30) {
		t.Errorf("split amount after update = %.2f, want 30", splits[0].Amount)
	}

	if _, err := svc.Update(ctx, uuid.NewString(), "Ghost", 10); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Update() error = %v, want %v", err, ErrExpenseNotFound)
	}
}

func TestService_MonthlyTotal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	household := mustHousehold(t, store, alice)

	svc := NewService(store)

	for _, cost := range []float64{12.5, 7.5} {
		if _, err := svc.Create(ctx, household.ID, alice.ID, CreateRequest{
			Item: "Snacks",
			Cost: cost,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	total, err := svc.MonthlyTotal(ctx, household.ID, time.UTC)
	if err != nil {
		t.Fatalf("MonthlyTotal() error = %v", err)
	}
	if !almostEqual(total, 20) {
		t.Errorf("monthly total = %.2f, want 20", total)
	}

	empty, err := svc.MonthlyTotal(ctx, uuid.NewString(), time.UTC)
	if err != nil {
		t.Fatalf("MonthlyTotal() error = %v", err)
	}
	if !almostEqual(empty, 0) {
		t.Errorf("monthly total for unknown household = %.2f, want 0", empty)
	}
}
