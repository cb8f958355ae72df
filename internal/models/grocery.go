package models

// Grocery represents a shopping-list item scoped to a household.
type Grocery struct {
	ID          string
	HouseholdID string

	// ProfileID is the profile that added the item.
	ProfileID string

	Name      string
	Cost      float64
	CreatedAt int64
}

// Schedule holds one weekly availability document per profile. The
// weekly payload is opaque JSON produced by the client.
type Schedule struct {
	ID        string
	ProfileID string
	Weekly    string
}
