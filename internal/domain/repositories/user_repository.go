package repositories

import (
	"context"

	"idrx-gate.backend/internal/domain/entities"
)

// UserRepository defines identity record data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByUserID(ctx context.Context, userID string) (*entities.User, error)

	// UpdateLocked loads the user's row under an exclusive lock, applies
	// mutate, and persists the result in the same transaction. It is the
	// serialization point for the write-once KYC bundle check.
	UpdateLocked(ctx context.Context, userID string, mutate func(*entities.User) error) (*entities.User, error)

	// SetProviderCredentials writes the provider credentials and flips
	// is_verified, guarded by is_verified = false in the same statement.
	// Returns ErrAlreadyOnboarded when the guard fails.
	SetProviderCredentials(ctx context.Context, userID, apiKey, apiSecretEncrypted string) error
}
