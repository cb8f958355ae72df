package schedules

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage/sqlite"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	alice := &models.Profile{ID: uuid.NewString(), Name: "Alice", Email: "alice@example.com"}
	if err := store.CreateProfile(ctx, alice); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	svc := NewService(store)

	if _, err := svc.Get(ctx, alice.ID); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("Get() before Put error = %v, want %v", err, ErrScheduleNotFound)
	}

	weekly := `{"monday":["09:00-12:00"]}`
	schedule, err := svc.Put(ctx, alice.ID, weekly)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if schedule.Weekly != weekly {
		t.Errorf("weekly = %q, want %q", schedule.Weekly, weekly)
	}

	// Second Put replaces, not duplicates.
	updated := `{"monday":[],"friday":["18:00-20:00"]}`
	schedule, err = svc.Put(ctx, alice.ID, updated)
	if err != nil {
		t.Fatalf("Put() replace error = %v", err)
	}
	if schedule.Weekly != updated {
		t.Errorf("weekly = %q, want %q", schedule.Weekly, updated)
	}

	if _, err := svc.Put(ctx, alice.ID, "{not json"); !errors.Is(err, ErrInvalidWeekly) {
		t.Errorf("Put() invalid JSON error = %v, want %v", err, ErrInvalidWeekly)
	}
}
