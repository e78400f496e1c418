package entities

import (
	"time"

	"github.com/google/uuid"
)

// Bank is a row of the local bank catalog, denormalized from the provider's
// bank list at link time
type Bank struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"bankCode"`
	Name      string    `json:"bankName"`
	CreatedAt time.Time `json:"createdAt"`
}

// BankAccount links a user to one external bank account.
// The tuple (user, bank, account number) is unique.
type BankAccount struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"-"`
	BankID        uuid.UUID `json:"-"`
	BankCode      string    `json:"bankCode"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LinkBankAccountInput represents input for linking a bank account
type LinkBankAccountInput struct {
	BankCode      string `json:"bankCode" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}
