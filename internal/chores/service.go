// Package chores orchestrates chore creation and completion for a
// household.
package chores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/homehero/homehero/internal/assign"
	"github.com/homehero/homehero/internal/impact"
	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

var (
	ErrHouseholdNotFound    = errors.New("household not found")
	ErrChoreNotFound        = errors.New("chore not found")
	ErrTitleRequired        = errors.New("chore title is required")
	ErrConflictingDueFields = errors.New("provide either dueAt or startDate/endDate, not both")
	ErrInvalidDateRange     = errors.New("endDate cannot be before startDate")
	ErrInvalidRepeatRule    = errors.New("unknown repeat rule")
)

// everyNMonths matches the parameterized repeat rule, e.g. "every-3-months".
var everyNMonths = regexp.MustCompile(`^every-[1-9][0-9]*-months$`)

// ValidRepeatRule reports whether rule is part of the repeat vocabulary.
func ValidRepeatRule(rule string) bool {
	switch rule {
	case models.RepeatNever, models.RepeatHourly, models.RepeatDaily,
		models.RepeatWeekdays, models.RepeatWeekends, models.RepeatWeekly,
		models.RepeatBiweekly, models.RepeatMonthly:
		return true
	}
	return everyNMonths.MatchString(rule)
}

// CreateRequest carries the caller-supplied fields of a new chore.
type CreateRequest struct {
	Title       string
	Description string

	// DueAt and the StartDate/EndDate range are mutually exclusive.
	DueAt     int64
	StartDate string
	EndDate   string

	RepeatRule    string
	RotateEnabled bool
	RotateWith    []string

	// AssigneeID names the responsible member for one-off chores.
	AssigneeID string
}

// Service manages the chore lifecycle: Created -> Completed. Completion
// removes the household link row rather than flipping a status field.
type Service struct {
	store     storage.Store
	estimator impact.Estimator
}

// NewService creates a chore service backed by the given store and
// impact estimator.
func NewService(store storage.Store, estimator impact.Estimator) *Service {
	return &Service{store: store, estimator: estimator}
}

// List returns a household's chores.
func (s *Service) List(ctx context.Context, householdID string) ([]models.Chore, error) {
	return s.store.GetChoresByHousehold(ctx, householdID)
}

// Create validates the request, scores its impact, resolves the assignee
// and persists the chore together with its household link row.
func (s *Service) Create(ctx context.Context, householdID string, req CreateRequest) (*models.Chore, error) {
	if _, err := s.store.GetHouseholdByID(ctx, householdID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if req.DueAt != 0 && (req.StartDate != "" || req.EndDate != "") {
		return nil, ErrConflictingDueFields
	}
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	rule := req.RepeatRule
	if rule == "" {
		rule = models.RepeatNever
	}
	if !ValidRepeatRule(rule) {
		return nil, ErrInvalidRepeatRule
	}

	members, err := s.store.GetMembersOrderedByName(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID
	}

	existing, err := s.store.GetChoresByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chores: %w", err)
	}
	history := make([]assign.Chore, len(existing))
	for i, c := range existing {
		history[i] = assign.Chore{Title: c.Title, AssigneeID: c.AssigneeID}
	}

	assigneeID, err := assign.PickAssignee(memberIDs, history, assign.Request{
		Title:         title,
		RepeatRule:    rule,
		RotateEnabled: req.RotateEnabled,
		RotateWith:    req.RotateWith,
		AssigneeID:    req.AssigneeID,
	})
	if err != nil {
		return nil, err
	}

	chore := &models.Chore{
		HouseholdID:   householdID,
		Title:         title,
		Description:   req.Description,
		DueAt:         req.DueAt,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RepeatRule:    rule,
		RotateEnabled: req.RotateEnabled,
		RotateWith:    req.RotateWith,
		AssigneeID:    assigneeID,
		Impact:        s.estimateImpact(ctx, title, req.Description),
	}

	if err := s.store.CreateChore(ctx, chore, assigneeID); err != nil {
		return nil, fmt.Errorf("failed to create chore: %w", err)
	}

	// Canonical stored view, not the in-memory struct.
	return s.store.GetChoreByID(ctx, chore.ID)
}

// Complete removes the household link row for a chore and credits the
// linked profile's score. Completing the same chore twice fails with
// ErrChoreNotFound; the score is credited exactly once.
func (s *Service) Complete(ctx context.Context, householdID, choreID string) error {
	linkedProfileID, err := s.store.GetLinkedProfileID(ctx, householdID, choreID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrChoreNotFound
		}
		return err
	}

	chore, err := s.store.GetChoreByID(ctx, choreID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrChoreNotFound
		}
		return err
	}

	deleted, err := s.store.UnlinkChore(ctx, householdID, choreID)
	if err != nil {
		return fmt.Errorf("failed to unlink chore: %w", err)
	}
	if deleted == 0 {
		// A concurrent completion got there first.
		return ErrChoreNotFound
	}

	if chore.Impact > 0 {
		if err := s.store.IncrementProfileScore(ctx, linkedProfileID, chore.Impact); err != nil {
			return fmt.Errorf("failed to credit score: %w", err)
		}
	}
	return nil
}

// estimateImpact asks the estimator for a difficulty score, degrading to
// the fixed fallback on any failure so creation never depends on the
// upstream being healthy.
func (s *Service) estimateImpact(ctx context.Context, title, description string) int {
	value, err := s.estimator.Estimate(ctx, title, description)
	if err != nil {
		slog.Warn("impact estimation failed, using fallback",
			"title", title, "fallback", impact.Fallback, "error", err)
		return impact.Fallback
	}
	return impact.Clamp(value)
}

func validateDateRange(start, end string) error {
	parse := func(v string) (time.Time, error) {
		return time.Parse("2006-01-02", v)
	}
	if start != "" {
		if _, err := parse(start); err != nil {
			return ErrInvalidDateRange
		}
	}
	if end != "" {
		if _, err := parse(end); err != nil {
			return ErrInvalidDateRange
		}
	}
	if start != "" && end != "" {
		s, _ := parse(start)
		e, _ := parse(end)
		if e.Before(s) {
			return ErrInvalidDateRange
		}
	}
	return nil
}
