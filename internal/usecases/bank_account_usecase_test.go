package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/internal/usecases"
)

func TestListBanks_CachesCatalog(t *testing.T) {
	setupRedis(t)

	provider := new(MockProvider)
	provider.On("GetBanks", mock.Anything).
		Return([]idrx.BankInfo{{BankCode: "014", BankName: "BCA"}}, nil)

	uc := usecases.NewBankAccountUsecase(new(MockUserRepository), new(MockBankAccountRepository), provider)

	banks, err := uc.ListBanks(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, "BCA", banks[0].BankName)

	// second call is served from the cache
	banks, err = uc.ListBanks(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 1)
	provider.AssertNumberOfCalls(t, "GetBanks", 1)
}

func TestListBanks_ProviderFailure(t *testing.T) {
	setupRedis(t)

	provider := new(MockProvider)
	provider.On("GetBanks", mock.Anything).Return(nil, domainerrors.ErrProviderUnavailable)

	uc := usecases.NewBankAccountUsecase(new(MockUserRepository), new(MockBankAccountRepository), provider)

	_, err := uc.ListBanks(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrProviderUnavailable)
}

func TestListBanks_CorruptCacheFallsThrough(t *testing.T) {
	srv := setupRedis(t)
	require.NoError(t, srv.Set("idrx:banks", "not json"))

	provider := new(MockProvider)
	provider.On("GetBanks", mock.Anything).
		Return([]idrx.BankInfo{{BankCode: "014", BankName: "BCA"}}, nil)

	uc := usecases.NewBankAccountUsecase(new(MockUserRepository), new(MockBankAccountRepository), provider)

	banks, err := uc.ListBanks(context.Background())
	require.NoError(t, err)
	assert.Len(t, banks, 1)
}

func TestListAccounts(t *testing.T) {
	user := completeUser("wallet-1")
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUserID", mock.Anything, "wallet-1").Return(user, nil)

	accountRepo := new(MockBankAccountRepository)
	accountRepo.On("ListByUserID", mock.Anything, user.ID).
		Return([]*entities.BankAccount{{ID: uuid.New(), UserID: user.ID, BankName: "BCA"}}, nil)

	uc := usecases.NewBankAccountUsecase(userRepo, accountRepo, new(MockProvider))

	accounts, err := uc.ListAccounts(context.Background(), "wallet-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "BCA", accounts[0].BankName)
}

func TestLinkAccount(t *testing.T) {
	user := completeUser("wallet-1")
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUserID", mock.Anything, "wallet-1").Return(user, nil)

	accountRepo := new(MockBankAccountRepository)
	accountRepo.On("CreateLink", mock.Anything, user.ID, "014", "BCA", "1234567890").
		Return(&entities.BankAccount{ID: uuid.New(), UserID: user.ID, BankCode: "014", BankName: "BCA", AccountNumber: "1234567890"}, nil)

	uc := usecases.NewBankAccountUsecase(userRepo, accountRepo, new(MockProvider))

	link, err := uc.LinkAccount(context.Background(), "wallet-1", &entities.LinkBankAccountInput{
		BankCode:      "014",
		BankName:      "BCA",
		AccountNumber: "1234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "1234567890", link.AccountNumber)
}

func TestLinkAccount_Duplicate(t *testing.T) {
	user := completeUser("wallet-1")
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUserID", mock.Anything, "wallet-1").Return(user, nil)

	accountRepo := new(MockBankAccountRepository)
	accountRepo.On("CreateLink", mock.Anything, user.ID, "014", "BCA", "1234567890").
		Return(nil, domainerrors.ErrDuplicateLink)

	uc := usecases.NewBankAccountUsecase(userRepo, accountRepo, new(MockProvider))

	_, err := uc.LinkAccount(context.Background(), "wallet-1", &entities.LinkBankAccountInput{
		BankCode:      "014",
		BankName:      "BCA",
		AccountNumber: "1234567890",
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateLink)
}

func TestUnlinkAccount(t *testing.T) {
	user := completeUser("wallet-1")
	accountID := uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByUserID", mock.Anything, "wallet-1").Return(user, nil)

	accountRepo := new(MockBankAccountRepository)
	accountRepo.On("DeleteLink", mock.Anything, user.ID, accountID).Return(nil)

	uc := usecases.NewBankAccountUsecase(userRepo, accountRepo, new(MockProvider))
	assert.NoError(t, uc.UnlinkAccount(context.Background(), "wallet-1", accountID))
}

func TestUnlinkAccount_NilID(t *testing.T) {
	user := completeUser("wallet-1")
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUserID", mock.Anything, "wallet-1").Return(user, nil)

	uc := usecases.NewBankAccountUsecase(userRepo, new(MockBankAccountRepository), new(MockProvider))
	err := uc.UnlinkAccount(context.Background(), "wallet-1", uuid.Nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
