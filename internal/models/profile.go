package models

// Profile represents a registered user account.
type Profile struct {
	// ID is the unique identifier for the profile (UUID format).
	ID string

	// Name is the display name of the profile.
	Name string

	// Email is the profile's email address (unique). Used for login
	// and for household invites.
	Email string

	// PasswordHash is the bcrypt hash of the profile's password.
	// Never serialized to API responses.
	PasswordHash string

	// Score is the accumulated point total, credited on chore completion.
	Score int

	// AmountOwed is the running total this profile owes other profiles
	// across all unpaid expense splits.
	AmountOwed float64

	// AmountOwedToUser is the running total other profiles owe this
	// profile for expenses it fronted.
	AmountOwedToUser float64

	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64
}
