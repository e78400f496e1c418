package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "idrx-gate.backend/internal/domain/errors"
)

func TestBankAccountRepository_CreateLinkAndList(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	userID := uuid.New()
	link, err := repo.CreateLink(context.Background(), userID, "014", "BCA", "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "014", link.BankCode)
	assert.Equal(t, "BCA", link.BankName)
	assert.Equal(t, "1234567890", link.AccountNumber)

	accounts, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, link.ID, accounts[0].ID)
	assert.Equal(t, "BCA", accounts[0].BankName)
}

func TestBankAccountRepository_CreateLink_ReusesBankRow(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	a, err := repo.CreateLink(context.Background(), uuid.New(), "014", "BCA", "111")
	require.NoError(t, err)
	b, err := repo.CreateLink(context.Background(), uuid.New(), "014", "BCA", "222")
	require.NoError(t, err)
	assert.Equal(t, a.BankID, b.BankID)
}

func TestBankAccountRepository_CreateLink_Duplicate(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	userID := uuid.New()
	_, err := repo.CreateLink(context.Background(), userID, "014", "BCA", "1234567890")
	require.NoError(t, err)

	_, err = repo.CreateLink(context.Background(), userID, "014", "BCA", "1234567890")
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateLink)

	// same account number at a different bank is a distinct link
	_, err = repo.CreateLink(context.Background(), userID, "009", "BNI", "1234567890")
	assert.NoError(t, err)
}

func TestBankAccountRepository_ListByUserID_Empty(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	accounts, err := repo.ListByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestBankAccountRepository_DeleteLink(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	userID := uuid.New()
	link, err := repo.CreateLink(context.Background(), userID, "014", "BCA", "1234567890")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteLink(context.Background(), userID, link.ID))

	accounts, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestBankAccountRepository_RelinkAfterUnlink(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	userID := uuid.New()
	link, err := repo.CreateLink(context.Background(), userID, "014", "BCA", "12345")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteLink(context.Background(), userID, link.ID))

	// an unlinked account can be linked again
	relinked, err := repo.CreateLink(context.Background(), userID, "014", "BCA", "12345")
	require.NoError(t, err)
	assert.NotEqual(t, link.ID, relinked.ID)

	accounts, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "12345", accounts[0].AccountNumber)
}

func TestBankAccountRepository_DeleteLink_OtherUsersLink(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	owner := uuid.New()
	link, err := repo.CreateLink(context.Background(), owner, "014", "BCA", "1234567890")
	require.NoError(t, err)

	err = repo.DeleteLink(context.Background(), uuid.New(), link.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// the owner's link is untouched
	accounts, err := repo.ListByUserID(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestBankAccountRepository_DeleteLink_Missing(t *testing.T) {
	db := newTestDB(t)
	createBankTables(t, db)
	repo := NewBankAccountRepository(db)

	err := repo.DeleteLink(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
