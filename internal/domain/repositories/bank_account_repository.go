package repositories

import (
	"context"

	"github.com/google/uuid"
	"idrx-gate.backend/internal/domain/entities"
)

// BankAccountRepository defines bank link data operations
type BankAccountRepository interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error)

	// CreateLink gets or creates the bank catalog row for bankCode, checks
	// the (user, bank, account number) uniqueness invariant and inserts the
	// link, all inside one transaction. Returns ErrDuplicateLink on violation.
	CreateLink(ctx context.Context, userID uuid.UUID, bankCode, bankName, accountNumber string) (*entities.BankAccount, error)

	// DeleteLink removes the link only if it belongs to userID; a guessed id
	// owned by another user yields ErrNotFound.
	DeleteLink(ctx context.Context, userID, accountID uuid.UUID) error
}
