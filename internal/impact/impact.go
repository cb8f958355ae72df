// Package impact estimates the point value of a chore. The production
// estimator asks an LLM through OpenRouter; chore creation never depends
// on it succeeding, so every estimator failure degrades to Fallback.
package impact

import "context"

// Fallback is the impact used whenever estimation fails or is disabled.
const Fallback = 5

// Bounds on a valid impact value.
const (
	Min = 1
	Max = 10
)

// Estimator produces an impact score in [Min, Max] for a chore.
type Estimator interface {
	Estimate(ctx context.Context, title, description string) (int, error)
}

// Fixed is an Estimator that always returns the same value. Used when no
// OpenRouter key is configured, and in tests.
type Fixed int

// Estimate returns the fixed value.
func (f Fixed) Estimate(ctx context.Context, title, description string) (int, error) {
	return int(f), nil
}

// Clamp bounds a raw estimate to the valid impact range.
func Clamp(v int) int {
	if v < Min {
		return Min
	}
	if v > Max {
		return Max
	}
	return v
}
