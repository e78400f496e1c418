package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/infrastructure/models"
)

// BankAccountRepository implements bank account link operations
type BankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

// ListByUserID lists a user's linked bank accounts with bank details resolved
func (r *BankAccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error) {
	type row struct {
		models.BankAccount
		BankCode string
		BankName string
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("bank_accounts").
		Select("bank_accounts.*, banks.code AS bank_code, banks.name AS bank_name").
		Joins("JOIN banks ON banks.id = bank_accounts.bank_id").
		Where("bank_accounts.user_id = ?", userID).
		Order("bank_accounts.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*entities.BankAccount, 0, len(rows))
	for _, rec := range rows {
		accounts = append(accounts, &entities.BankAccount{
			ID:            rec.ID,
			UserID:        rec.UserID,
			BankID:        rec.BankID,
			BankCode:      rec.BankCode,
			BankName:      rec.BankName,
			AccountNumber: rec.AccountNumber,
			CreatedAt:     rec.CreatedAt,
		})
	}
	return accounts, nil
}

// CreateLink links a bank account to a user. The bank row is created on first
// sight of the code; a second link with the same bank and account number for
// the same user is rejected.
func (r *BankAccountRepository) CreateLink(ctx context.Context, userID uuid.UUID, bankCode, bankName, accountNumber string) (*entities.BankAccount, error) {
	var created *entities.BankAccount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bank models.Bank
		err := tx.Where("code = ?", bankCode).First(&bank).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bank = models.Bank{ID: uuid.New(), Code: bankCode, Name: bankName}
			if err := tx.Create(&bank).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&models.BankAccount{}).
			Where("user_id = ? AND bank_id = ? AND account_number = ?", userID, bank.ID, accountNumber).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrDuplicateLink
		}

		m := models.BankAccount{
			ID:            uuid.New(),
			UserID:        userID,
			BankID:        bank.ID,
			AccountNumber: accountNumber,
		}
		if err := tx.Create(&m).Error; err != nil {
			if isDuplicateErr(err) {
				return domainerrors.ErrDuplicateLink
			}
			return err
		}

		created = &entities.BankAccount{
			ID:            m.ID,
			UserID:        m.UserID,
			BankID:        bank.ID,
			BankCode:      bank.Code,
			BankName:      bank.Name,
			AccountNumber: m.AccountNumber,
			CreatedAt:     m.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteLink removes a user's bank account link. A link belonging to another
// user is indistinguishable from a missing one.
func (r *BankAccountRepository) DeleteLink(ctx context.Context, userID, accountID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		Delete(&models.BankAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
