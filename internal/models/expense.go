package models

// Expense represents a shared cost fronted by one household member.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseholdID is the household that owns the expense.
	HouseholdID string

	// PayerID is the profile who fronted the full cost.
	PayerID string

	// Item describes what was bought.
	Item string

	// Cost is the full amount paid. Always positive.
	Cost float64

	// Score is an optional point value attached to the expense.
	Score int

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit represents one non-payer participant's share of an expense.
// The payer never holds a split of their own expense.
type ExpenseSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the expense this split belongs to.
	ExpenseID string

	// ProfileID is the profile that owes this share.
	ProfileID string

	// Amount is this participant's equal share of the cost.
	Amount float64

	// Paid reports whether the participant has settled this share.
	Paid bool
}
