package models

// Repeat rule vocabulary. EveryNMonths is a pattern, e.g. "every-3-months";
// see chores.ValidRepeatRule.
const (
	RepeatNever    = "never"
	RepeatHourly   = "hourly"
	RepeatDaily    = "daily"
	RepeatWeekdays = "weekdays"
	RepeatWeekends = "weekends"
	RepeatWeekly   = "weekly"
	RepeatBiweekly = "biweekly"
	RepeatMonthly  = "monthly"
)

// Chore represents a unit of household work assigned to one member.
// A chore carries either a single due timestamp or a start/end date
// range, never both.
type Chore struct {
	// ID is the unique identifier for the chore (UUID format).
	ID string

	// HouseholdID is the household this chore belongs to.
	HouseholdID string

	Title       string
	Description string

	// DueAt is the Unix timestamp the chore is due, or 0 when the chore
	// uses a date range instead.
	DueAt int64

	// StartDate and EndDate bound a date-range chore ("YYYY-MM-DD").
	// Empty when DueAt is used.
	StartDate string
	EndDate   string

	// RepeatRule is one of the repeat vocabulary values above.
	RepeatRule string

	// RotateEnabled turns on round-robin rotation for recurring chores.
	RotateEnabled bool

	// RotateWith restricts rotation to a subset of household members.
	// Empty means all members are eligible.
	RotateWith []string

	// AssigneeID is the profile responsible for this instance.
	AssigneeID string

	// Impact is the point value credited to the assignee on completion.
	Impact int

	// CreatedAt is the Unix timestamp when the chore was created.
	CreatedAt int64
}
