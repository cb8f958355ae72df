package assign

import (
	"errors"
	"testing"
)

func TestPickAssignee(t *testing.T) {
	members := []string{"alice", "bob", "carol"}

	tests := []struct {
		name     string
		members  []string
		existing []Chore
		req      Request
		want     string
		wantErr  error
	}{
		{
			name:    "empty roster fails",
			members: nil,
			req:     Request{Title: "Dishes", RepeatRule: "weekly"},
			wantErr: ErrNoEligibleMembers,
		},
		{
			name:    "one-off chore requires explicit assignee",
			members: members,
			req:     Request{Title: "Fix sink", RepeatRule: "never"},
			wantErr: ErrAssigneeRequired,
		},
		{
			name:    "one-off chore rejects non-member assignee",
			members: members,
			req:     Request{Title: "Fix sink", RepeatRule: "never", AssigneeID: "mallory"},
			wantErr: ErrAssigneeNotMember,
		},
		{
			name:    "one-off chore returns requested member unchanged",
			members: members,
			req:     Request{Title: "Fix sink", RepeatRule: "never", AssigneeID: "bob"},
			want:    "bob",
		},
		{
			name:    "blank repeat rule treated as never",
			members: members,
			req:     Request{Title: "Fix sink", AssigneeID: "carol"},
			want:    "carol",
		},
		{
			name:    "recurring without rotation defaults to first member",
			members: members,
			req:     Request{Title: "Dishes", RepeatRule: "weekly", AssigneeID: "carol"},
			want:    "alice",
		},
		{
			name:    "rotation with empty candidate intersection fails",
			members: members,
			req: Request{
				Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true,
				RotateWith: []string{"mallory"},
			},
			wantErr: ErrNoEligibleCandidates,
		},
		{
			name:    "rotation with no history starts at first candidate",
			members: members,
			req:     Request{Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true},
			want:    "alice",
		},
		{
			name:    "rotation ignores chores with other titles",
			members: members,
			existing: []Chore{
				{Title: "Trash", AssigneeID: "alice"},
				{Title: "Trash", AssigneeID: "bob"},
			},
			req:  Request{Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true},
			want: "alice",
		},
		{
			name:    "title match is case-insensitive and trimmed",
			members: members,
			existing: []Chore{
				{Title: "  dishes ", AssigneeID: "alice"},
			},
			req:  Request{Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true},
			want: "bob",
		},
		{
			name:    "assignments outside the candidate set do not advance the cycle",
			members: members,
			existing: []Chore{
				{Title: "Dishes", AssigneeID: "alice"},
			},
			req: Request{
				Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true,
				RotateWith: []string{"bob", "carol"},
			},
			want: "bob",
		},
		{
			name:    "subset rotation preserves roster order",
			members: members,
			req: Request{
				Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true,
				RotateWith: []string{"carol", "bob"},
			},
			want: "bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PickAssignee(tt.members, tt.existing, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PickAssignee error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PickAssignee failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PickAssignee = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPickAssignee_FullCycle checks that rotation visits every member
// before repeating: 4 same-titled chores over members A,B,C land on
// A,B,C,A.
func TestPickAssignee_FullCycle(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	req := Request{Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true}

	var existing []Chore
	want := []string{"alice", "bob", "carol", "alice"}
	for i, expected := range want {
		got, err := PickAssignee(members, existing, req)
		if err != nil {
			t.Fatalf("round %d: PickAssignee failed: %v", i, err)
		}
		if got != expected {
			t.Fatalf("round %d: got %q, want %q", i, got, expected)
		}
		existing = append(existing, Chore{Title: req.Title, AssigneeID: got})
	}
}

// TestPickAssignee_SubsetCycle checks that restricting rotation to {B,C}
// yields B,C,B,C regardless of A's position in the roster.
func TestPickAssignee_SubsetCycle(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	req := Request{
		Title: "Dishes", RepeatRule: "weekly", RotateEnabled: true,
		RotateWith: []string{"bob", "carol"},
	}

	var existing []Chore
	want := []string{"bob", "carol", "bob", "carol"}
	for i, expected := range want {
		got, err := PickAssignee(members, existing, req)
		if err != nil {
			t.Fatalf("round %d: PickAssignee failed: %v", i, err)
		}
		if got != expected {
			t.Fatalf("round %d: got %q, want %q", i, got, expected)
		}
		existing = append(existing, Chore{Title: req.Title, AssigneeID: got})
	}
}
