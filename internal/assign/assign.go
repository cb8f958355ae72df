// Package assign decides which household member is responsible for a
// chore being created. Rotation is stateless: the round-robin position is
// derived from how many same-titled chores already went to the eligible
// members, so no cursor needs to be stored or kept in sync.
package assign

import (
	"errors"
	"strings"
)

var (
	ErrNoEligibleMembers    = errors.New("no household members found to assign this chore")
	ErrAssigneeRequired     = errors.New("an assignee is required when repeat is set to never")
	ErrAssigneeNotMember    = errors.New("selected assignee is not a member of this household")
	ErrNoEligibleCandidates = errors.New("no eligible members found for rotation")
)

// Request carries the assignment-relevant fields of a chore being created.
type Request struct {
	// Title of the new chore. Matched case-insensitively (trimmed)
	// against existing chores to derive the rotation position.
	Title string

	// RepeatRule is the chore's repeat vocabulary value; "never" marks a
	// one-off chore with a caller-supplied assignee.
	RepeatRule string

	// RotateEnabled turns on round-robin rotation for recurring chores.
	RotateEnabled bool

	// RotateWith optionally restricts rotation to a subset of members.
	RotateWith []string

	// AssigneeID is the explicit assignee for one-off chores.
	AssigneeID string
}

// Chore is the minimal view of an existing chore needed for rotation.
type Chore struct {
	Title      string
	AssigneeID string
}

// PickAssignee returns the profile responsible for the new chore.
//
// members must be the household's full roster in stable name order; the
// returned assignee is deterministic for a given roster and history.
// existing is the household's current chores, used only to count prior
// same-titled assignments when rotation is on.
//
// Two same-titled chores created concurrently can observe the same count
// and land on the same member; the cycle self-corrects on the next
// creation, which is accepted.
func PickAssignee(members []string, existing []Chore, req Request) (string, error) {
	if len(members) == 0 {
		return "", ErrNoEligibleMembers
	}

	rule := strings.TrimSpace(req.RepeatRule)
	if rule == "" {
		rule = "never"
	}
	rotationEligible := !strings.EqualFold(rule, "never")

	// One-off chore: the caller must name a current member.
	if !rotationEligible {
		if req.AssigneeID == "" {
			return "", ErrAssigneeRequired
		}
		if !contains(members, req.AssigneeID) {
			return "", ErrAssigneeNotMember
		}
		return req.AssigneeID, nil
	}

	// Recurring without rotation: first member in stable order.
	if !req.RotateEnabled {
		return members[0], nil
	}

	candidates := candidateSet(members, req.RotateWith)
	if len(candidates) == 0 {
		return "", ErrNoEligibleCandidates
	}

	title := strings.TrimSpace(req.Title)
	idx := matchingAssignments(existing, title, candidates) % len(candidates)
	return candidates[idx], nil
}

// candidateSet intersects the requested rotation subset with the current
// roster, preserving roster order. An empty subset means everyone.
func candidateSet(members, rotateWith []string) []string {
	if len(rotateWith) == 0 {
		return members
	}
	allow := make(map[string]bool, len(rotateWith))
	for _, id := range rotateWith {
		allow[id] = true
	}
	var candidates []string
	for _, id := range members {
		if allow[id] {
			candidates = append(candidates, id)
		}
	}
	return candidates
}

// matchingAssignments counts existing chores whose title matches the new
// one and whose assignee is still an eligible candidate.
func matchingAssignments(existing []Chore, title string, candidates []string) int {
	count := 0
	for _, c := range existing {
		if !strings.EqualFold(strings.TrimSpace(c.Title), title) {
			continue
		}
		if c.AssigneeID != "" && contains(candidates, c.AssigneeID) {
			count++
		}
	}
	return count
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
