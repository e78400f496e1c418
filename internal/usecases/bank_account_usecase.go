package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/domain/repositories"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/pkg/redis"
)

const (
	bankCatalogCacheKey = "idrx:banks"
	bankCatalogCacheTTL = 10 * time.Minute
)

var (
	bankRedisGet = redis.Get
	bankRedisSet = redis.Set
)

// bankCatalogProvider is the slice of the provider client this usecase needs
type bankCatalogProvider interface {
	GetBanks(ctx context.Context) ([]idrx.BankInfo, error)
}

// BankAccountUsecase manages the provider bank catalog and per-user bank
// account links.
type BankAccountUsecase struct {
	userRepo        repositories.UserRepository
	bankAccountRepo repositories.BankAccountRepository
	provider        bankCatalogProvider
}

// NewBankAccountUsecase creates a new bank account usecase
func NewBankAccountUsecase(
	userRepo repositories.UserRepository,
	bankAccountRepo repositories.BankAccountRepository,
	provider bankCatalogProvider,
) *BankAccountUsecase {
	return &BankAccountUsecase{
		userRepo:        userRepo,
		bankAccountRepo: bankAccountRepo,
		provider:        provider,
	}
}

// ListBanks returns the provider's bank catalog. The catalog is not
// user-scoped, so it is served from a shared Redis cache when present.
func (u *BankAccountUsecase) ListBanks(ctx context.Context) ([]idrx.BankInfo, error) {
	if cached, err := bankRedisGet(ctx, bankCatalogCacheKey); err == nil {
		var banks []idrx.BankInfo
		if err := json.Unmarshal([]byte(cached), &banks); err == nil {
			return banks, nil
		}
		// fall through on a corrupt cache entry
	}

	banks, err := u.provider.GetBanks(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(banks); err == nil {
		_ = bankRedisSet(ctx, bankCatalogCacheKey, string(payload), bankCatalogCacheTTL)
	}
	return banks, nil
}

// ListAccounts lists the user's linked bank accounts
func (u *BankAccountUsecase) ListAccounts(ctx context.Context, userID string) ([]*entities.BankAccount, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.bankAccountRepo.ListByUserID(ctx, user.ID)
}

// LinkAccount links a bank account to the user. Bank name and code come from
// the client's catalog selection; the bank row is created on first sight.
func (u *BankAccountUsecase) LinkAccount(ctx context.Context, userID string, input *entities.LinkBankAccountInput) (*entities.BankAccount, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.bankAccountRepo.CreateLink(ctx, user.ID, input.BankCode, input.BankName, input.AccountNumber)
}

// UnlinkAccount removes one of the user's bank account links
func (u *BankAccountUsecase) UnlinkAccount(ctx context.Context, userID string, accountID uuid.UUID) error {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if accountID == uuid.Nil {
		return domainerrors.ErrInvalidInput
	}
	return u.bankAccountRepo.DeleteLink(ctx, user.ID, accountID)
}
