// Package households manages household membership: creation, joining by
// home code, invitations and leaving.
package households

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

var (
	ErrNameRequired      = errors.New("household name is required")
	ErrInvalidHomeCode   = errors.New("home code must be exactly 6 digits")
	ErrHouseholdNotFound = errors.New("household not found")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrInviteClosed      = errors.New("invite is no longer pending")
	ErrNotInvitee        = errors.New("invite is addressed to a different profile")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNotMember         = errors.New("profile is not a member of this household")
)

var homeCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// codeAttempts bounds the retry loop when a generated home code collides
// with an existing household.
const codeAttempts = 10

// Service manages households and their membership.
type Service struct {
	store storage.Store
}

// NewService creates a household service backed by the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Create makes a new household with a fresh home code and enrolls the
// creator as its first member. When no address is given the name is
// stored as the address label too.
func (s *Service) Create(ctx context.Context, creatorID, name, address string) (*models.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(address) == "" {
		address = name
	}

	code, err := s.generateHomeCode(ctx)
	if err != nil {
		return nil, err
	}

	household := &models.Household{
		Name:     name,
		Address:  address,
		HomeCode: code,
	}
	if err := s.store.CreateHousehold(ctx, household); err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}
	if err := s.store.AddMember(ctx, household.ID, creatorID); err != nil {
		return nil, fmt.Errorf("failed to enroll creator: %w", err)
	}
	return household, nil
}

// CreateAndInvite creates a household and immediately issues invites to
// the given email addresses. Invite failures for individual addresses do
// not roll back the household; the addresses that could not be invited
// are returned alongside it.
func (s *Service) CreateAndInvite(ctx context.Context, creatorID, name, address string, emails []string) (*models.Household, []string, error) {
	household, err := s.Create(ctx, creatorID, name, address)
	if err != nil {
		return nil, nil, err
	}

	var failed []string
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		if _, err := s.InviteByEmail(ctx, household.ID, creatorID, email); err != nil {
			failed = append(failed, email)
		}
	}
	return household, failed, nil
}

// Get returns a household by ID.
func (s *Service) Get(ctx context.Context, householdID string) (*models.Household, error) {
	household, err := s.store.GetHouseholdByID(ctx, householdID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}
	return household, nil
}

// ListForProfile returns the households a profile belongs to.
func (s *Service) ListForProfile(ctx context.Context, profileID string) ([]models.Household, error) {
	return s.store.GetHouseholdsForProfile(ctx, profileID)
}

// Members returns a household's members in name order.
func (s *Service) Members(ctx context.Context, householdID string) ([]models.Profile, error) {
	if _, err := s.Get(ctx, householdID); err != nil {
		return nil, err
	}
	return s.store.GetMembersOrderedByName(ctx, householdID)
}

// JoinByHomeCode adds a profile to the household owning the given
// 6-digit code. Joining a household the profile already belongs to is a
// no-op.
func (s *Service) JoinByHomeCode(ctx context.Context, profileID, code string) (*models.Household, error) {
	code = strings.TrimSpace(code)
	if !homeCodePattern.MatchString(code) {
		return nil, ErrInvalidHomeCode
	}

	household, err := s.store.GetHouseholdByHomeCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}
	if err := s.store.AddMember(ctx, household.ID, profileID); err != nil {
		return nil, fmt.Errorf("failed to join household: %w", err)
	}
	return household, nil
}

// Leave removes a profile from a household. When the last member
// leaves, the household itself is deleted.
func (s *Service) Leave(ctx context.Context, householdID, profileID string) error {
	if _, err := s.Get(ctx, householdID); err != nil {
		return err
	}
	if err := s.store.RemoveMember(ctx, householdID, profileID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}

// InviteByEmail creates a pending invite addressed to email. When the
// email already belongs to a registered profile, the invite is pinned to
// that profile's ID as well.
func (s *Service) InviteByEmail(ctx context.Context, householdID, inviterID, email string) (*models.HouseholdInvite, error) {
	if _, err := s.Get(ctx, householdID); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrProfileNotFound
	}

	invite := &models.HouseholdInvite{
		HouseholdID:      householdID,
		InviterProfileID: inviterID,
		InviteeEmail:     email,
		Status:           models.InviteStatusPending,
	}
	invitee, err := s.store.GetProfileByEmail(ctx, email)
	switch {
	case err == nil:
		invite.InviteeProfileID = invitee.ID
	case errors.Is(err, storage.ErrNotFound):
		// Invite stays email-only until the invitee registers.
	default:
		return nil, err
	}

	if err := s.store.CreateInvite(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, nil
}

// InvitesFor lists the pending and resolved invites addressed to a
// profile, matched by ID or by the profile's email.
func (s *Service) InvitesFor(ctx context.Context, profileID string) ([]models.HouseholdInvite, error) {
	profile, err := s.store.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.store.GetInvitesForProfile(ctx, profile.ID, profile.Email)
}

// AcceptInvite marks a pending invite accepted and enrolls the profile
// in the household, atomically.
func (s *Service) AcceptInvite(ctx context.Context, inviteID, profileID string) (*models.Household, error) {
	invite, err := s.loadAddressedInvite(ctx, inviteID, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AcceptInvite(ctx, invite.ID, invite.HouseholdID, profileID); err != nil {
		return nil, fmt.Errorf("failed to accept invite: %w", err)
	}
	return s.Get(ctx, invite.HouseholdID)
}

// DeclineInvite marks a pending invite declined.
func (s *Service) DeclineInvite(ctx context.Context, inviteID, profileID string) error {
	invite, err := s.loadAddressedInvite(ctx, inviteID, profileID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateInviteStatus(ctx, invite.ID, models.InviteStatusDeclined); err != nil {
		return fmt.Errorf("failed to decline invite: %w", err)
	}
	return nil
}

// loadAddressedInvite loads a pending invite and verifies it is
// addressed to the acting profile, by pinned ID or by email.
func (s *Service) loadAddressedInvite(ctx context.Context, inviteID, profileID string) (*models.HouseholdInvite, error) {
	invite, err := s.store.GetInviteByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteClosed
	}

	if invite.InviteeProfileID == profileID {
		return invite, nil
	}
	profile, err := s.store.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !strings.EqualFold(profile.Email, invite.InviteeEmail) {
		return nil, ErrNotInvitee
	}
	return invite, nil
}

// generateHomeCode draws random 6-digit codes until one is free.
func (s *Service) generateHomeCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", fmt.Errorf("failed to generate home code: %w", err)
		}
		code := fmt.Sprintf("%06d", n.Int64())

		_, err = s.store.GetHouseholdByHomeCode(ctx, code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("failed to generate a unique home code")
}
