package auth

import (
	"context"

	"github.com/homehero/homehero/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, OAuth, an external identity provider) without changing the
// handlers.
type Authenticator interface {
	// Register creates a new profile with the given email and credential.
	Register(ctx context.Context, email, name, credential string) (*models.Profile, error)

	// Authenticate verifies the credentials and returns the profile.
	Authenticate(ctx context.Context, email, credential string) (*models.Profile, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
