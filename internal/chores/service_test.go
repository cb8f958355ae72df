package chores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/assign"
	"github.com/homehero/homehero/internal/impact"
	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
	"github.com/homehero/homehero/internal/storage/sqlite"
)

type failingEstimator struct{}

func (failingEstimator) Estimate(context.Context, string, string) (int, error) {
	return 0, errors.New("upstream unavailable")
}

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
		HomeCode: "123456",
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

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		req          CreateRequest
		estimator    impact.Estimator
		wantErr      error
		validateFunc func(t *testing.T, chore *models.Chore, alice, bob *models.Profile)
	}{
		{
			name: "one-off chore with explicit assignee",
			req: CreateRequest{
				Title:      "Take out trash",
				AssigneeID: "alice",
			},
			estimator: impact.Fixed(3),
			validateFunc: func(t *testing.T, chore *models.Chore, alice, bob *models.Profile) {
				if chore.AssigneeID != alice.ID {
					t.Errorf("assignee = %s, want %s", chore.AssigneeID, alice.ID)
				}
				if chore.RepeatRule != models.RepeatNever {
					t.Errorf("repeat rule = %s, want %s", chore.RepeatRule, models.RepeatNever)
				}
				if chore.Impact != 3 {
					t.Errorf("impact = %d, want 3", chore.Impact)
				}
			},
		},
		{
			name: "estimator failure falls back",
			req: CreateRequest{
				Title:      "Clean oven",
				AssigneeID: "alice",
			},
			estimator: failingEstimator{},
			validateFunc: func(t *testing.T, chore *models.Chore, alice, bob *models.Profile) {
				if chore.Impact != impact.Fallback {
					t.Errorf("impact = %d, want fallback %d", chore.Impact, impact.Fallback)
				}
			},
		},
		{
			name: "estimate above range is clamped",
			req: CreateRequest{
				Title:      "Repaint the house",
				AssigneeID: "alice",
			},
			estimator: impact.Fixed(42),
			validateFunc: func(t *testing.T, chore *models.Chore, alice, bob *models.Profile) {
				if chore.Impact != impact.Max {
					t.Errorf("impact = %d, want %d", chore.Impact, impact.Max)
				}
			},
		},
		{
			name: "recurring chore defaults to first member by name",
			req: CreateRequest{
				Title:      "Water plants",
				RepeatRule: models.RepeatDaily,
			},
			estimator: impact.Fixed(2),
			validateFunc: func(t *testing.T, chore *models.Chore, alice, bob *models.Profile) {
				if chore.AssigneeID != alice.ID {
					t.Errorf("assignee = %s, want %s (first by name)", chore.AssigneeID, alice.ID)
				}
			},
		},
		{
			name: "blank title",
			req: CreateRequest{
				Title:      "   ",
				AssigneeID: "alice",
			},
			estimator: impact.Fixed(2),
			wantErr:   ErrTitleRequired,
		},
		{
			name: "dueAt and date range together",
			req: CreateRequest{
				Title:      "Mop floors",
				AssigneeID: "alice",
				DueAt:      1700000000,
				StartDate:  "2026-01-01",
			},
			estimator: impact.Fixed(2),
			wantErr:   ErrConflictingDueFields,
		},
		{
			name: "end date before start date",
			req: CreateRequest{
				Title:      "Mop floors",
				AssigneeID: "alice",
				StartDate:  "2026-02-01",
				EndDate:    "2026-01-01",
			},
			estimator: impact.Fixed(2),
			wantErr:   ErrInvalidDateRange,
		},
		{
			name: "unknown repeat rule",
			req: CreateRequest{
				Title:      "Mop floors",
				AssigneeID: "alice",
				RepeatRule: "fortnightly",
			},
			estimator: impact.Fixed(2),
			wantErr:   ErrInvalidRepeatRule,
		},
		{
			name: "one-off chore without assignee",
			req: CreateRequest{
				Title: "Mop floors",
			},
			estimator: impact.Fixed(2),
			wantErr:   assign.ErrAssigneeRequired,
		},
		{
			name: "assignee outside the household",
			req: CreateRequest{
				Title:      "Mop floors",
				AssigneeID: "stranger",
			},
			estimator: impact.Fixed(2),
			wantErr:   assign.ErrAssigneeNotMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			alice := mustProfile(t, store, "Alice")
			bob := mustProfile(t, store, "Bob")
			household := mustHousehold(t, store, alice, bob)

			// Test cases name members symbolically.
			req := tt.req
			switch req.AssigneeID {
			case "alice":
				req.AssigneeID = alice.ID
			case "stranger":
				req.AssigneeID = uuid.NewString()
			}

			svc := NewService(store, tt.estimator)
			chore, err := svc.Create(ctx, household.ID, req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, chore, alice, bob)
			}
		})
	}
}

func TestService_Create_UnknownHousehold(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, impact.Fixed(2))

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateRequest{Title: "Dust shelves"})
	if !errors.Is(err, ErrHouseholdNotFound) {
		t.Fatalf("Create() error = %v, want %v", err, ErrHouseholdNotFound)
	}
}

func TestService_Create_Rotation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	bob := mustProfile(t, store, "Bob")
	carol := mustProfile(t, store, "Carol")
	household := mustHousehold(t, store, alice, bob, carol)

	svc := NewService(store, impact.Fixed(2))

	req := CreateRequest{
		Title:         "Dishes",
		RepeatRule:    models.RepeatWeekly,
		RotateEnabled: true,
		RotateWith:    []string{alice.ID, bob.ID, carol.ID},
	}

	want := []string{alice.ID, bob.ID, carol.ID, alice.ID}
	for round, wantAssignee := range want {
		chore, err := svc.Create(ctx, household.ID, req)
		if err != nil {
			t.Fatalf("round %d: Create() error = %v", round, err)
		}
		if chore.AssigneeID != wantAssignee {
			t.Errorf("round %d: assignee = %s, want %s", round, chore.AssigneeID, wantAssignee)
		}
	}
}

func TestService_Complete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	household := mustHousehold(t, store, alice)

	svc := NewService(store, impact.Fixed(4))

	chore, err := svc.Create(ctx, household.ID, CreateRequest{
		Title:      "Vacuum living room",
		AssigneeID: alice.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Complete(ctx, household.ID, chore.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	profile, err := store.GetProfileByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if profile.Score != 4 {
		t.Errorf("score = %d, want 4", profile.Score)
	}

	// Second completion of the same chore fails and does not credit again.
	if err := svc.Complete(ctx, household.ID, chore.ID); !errors.Is(err, ErrChoreNotFound) {
		t.Fatalf("Complete() error = %v, want %v", err, ErrChoreNotFound)
	}
	profile, err = store.GetProfileByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if profile.Score != 4 {
		t.Errorf("score after double completion = %d, want 4", profile.Score)
	}
}

func TestService_Complete_UnknownChore(t *testing.T) {
	store := newTestStore(t)
	alice := mustProfile(t, store, "Alice")
	household := mustHousehold(t, store, alice)

	svc := NewService(store, impact.Fixed(2))
	err := svc.Complete(context.Background(), household.ID, uuid.NewString())
	if !errors.Is(err, ErrChoreNotFound) {
		t.Fatalf("Complete() error = %v, want %v", err, ErrChoreNotFound)
	}
}

func TestValidRepeatRule(t *testing.T) {
	valid := []string{
		models.RepeatNever, models.RepeatHourly, models.RepeatDaily,
		models.RepeatWeekdays, models.RepeatWeekends, models.RepeatWeekly,
		models.RepeatBiweekly, models.RepeatMonthly,
		"every-2-months", "every-12-months",
	}
	for _, rule := range valid {
		if !ValidRepeatRule(rule) {
			t.Errorf("ValidRepeatRule(%q) = false, want true", rule)
		}
	}

	invalid := []string{"", "fortnightly", "every-0-months", "every--months", "every-2-weeks"}
	for _, rule := range invalid {
		if ValidRepeatRule(rule) {
			t.Errorf("ValidRepeatRule(%q) = true, want false", rule)
		}
	}
}
