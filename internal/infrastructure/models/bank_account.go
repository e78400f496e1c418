package models

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount rows are hard-deleted on unlink so the composite unique index
// never blocks a user from relinking an account they removed.
type BankAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bank_account_link,priority:1"`
	BankID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bank_account_link,priority:2"`
	AccountNumber string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_bank_account_link,priority:3"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
