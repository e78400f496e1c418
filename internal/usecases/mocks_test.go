package usecases_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"idrx-gate.backend/internal/domain/entities"
	"idrx-gate.backend/internal/infrastructure/idrx"
	redispkg "idrx-gate.backend/pkg/redis"
)

// setupRedis points the shared redis client at a fresh miniredis instance
func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable: %v", err)
	}
	t.Cleanup(srv.Close)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()}))
	return srv
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUserID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLocked(ctx context.Context, userID string, mutate func(*entities.User) error) (*entities.User, error) {
	args := m.Called(ctx, userID, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	user := args.Get(0).(*entities.User)
	if err := mutate(user); err != nil {
		return nil, err
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SetProviderCredentials(ctx context.Context, userID, apiKey, apiSecretEncrypted string) error {
	args := m.Called(ctx, userID, apiKey, apiSecretEncrypted)
	return args.Error(0)
}

// Mock BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) CreateLink(ctx context.Context, userID uuid.UUID, bankCode, bankName, accountNumber string) (*entities.BankAccount, error) {
	args := m.Called(ctx, userID, bankCode, bankName, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) DeleteLink(ctx context.Context, userID, accountID uuid.UUID) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

// Mock provider client
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Onboard(ctx context.Context, input idrx.OnboardInput) (*idrx.OnboardData, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idrx.OnboardData), args.Error(1)
}

func (m *MockProvider) GetBanks(ctx context.Context) ([]idrx.BankInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]idrx.BankInfo), args.Error(1)
}

func (m *MockProvider) GetRates(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockProvider) MintRequest(ctx context.Context, creds idrx.Credentials, input *entities.MintInput) (*idrx.MintData, error) {
	args := m.Called(ctx, creds, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idrx.MintData), args.Error(1)
}

func strPtr(s string) *string { return &s }

// completeUser returns a user whose KYC bundle is filled in
func completeUser(userID string) *entities.User {
	return &entities.User{
		ID:              uuid.New(),
		UserID:          userID,
		Email:           "jane@example.com",
		WalletAddress:   "0x52908400098527886E0F7030069857D2E4169EE7",
		FullName:        strPtr("Jane Doe"),
		PhysicalAddress: strPtr("123 St"),
		IdentityNumber:  strPtr("1234567890123456"),
		IdentityFile:    strPtr("ZmFrZS1qcGVnLWJ5dGVz"),
	}
}
