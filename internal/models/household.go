package models

// Household represents a group of profiles sharing chores and expenses.
// A household is deleted automatically when its last member leaves; API
// callers never delete one directly.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display label for the household.
	Name string

	// Address is the household's street address. When no address is
	// given at creation the name doubles as the label stored here.
	Address string

	// HomeCode is the unique 6-digit code other profiles use to join.
	HomeCode string

	// Score is the household's accumulated point total.
	Score int

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}

// HouseholdInvite represents an invitation to join a household.
// Status is one of "pending", "accepted" or "declined".
type HouseholdInvite struct {
	ID               string
	HouseholdID      string
	InviterProfileID string

	// InviteeProfileID is set when the invited email already belongs to
	// a registered profile; empty otherwise.
	InviteeProfileID string
	InviteeEmail     string
	Status           string
	CreatedAt        int64
}

// Invite status values.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)
