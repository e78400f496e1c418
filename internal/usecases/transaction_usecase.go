package usecases

import (
	"context"
	"encoding/json"
	"time"

	"idrx-gate.backend/internal/domain/entities"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/pkg/redis"
)

const (
	ratesCacheKey = "idrx:rates"
	ratesCacheTTL = time.Minute
)

var (
	ratesRedisGet = redis.Get
	ratesRedisSet = redis.Set
)

// transactionProvider is the slice of the provider client this usecase needs
type transactionProvider interface {
	GetRates(ctx context.Context) (json.RawMessage, error)
	MintRequest(ctx context.Context, creds idrx.Credentials, input *entities.MintInput) (*idrx.MintData, error)
}

// credentialSource resolves a user's provider credentials
type credentialSource interface {
	CredentialsFor(ctx context.Context, userID string) (idrx.Credentials, error)
}

// TransactionUsecase relays rate lookups and mint requests to the provider
type TransactionUsecase struct {
	provider    transactionProvider
	credentials credentialSource
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(provider transactionProvider, credentials credentialSource) *TransactionUsecase {
	return &TransactionUsecase{provider: provider, credentials: credentials}
}

// GetRates returns current provider exchange rates, briefly cached since
// rates move slower than request traffic.
func (u *TransactionUsecase) GetRates(ctx context.Context) (json.RawMessage, error) {
	if cached, err := ratesRedisGet(ctx, ratesCacheKey); err == nil && cached != "" {
		return json.RawMessage(cached), nil
	}

	rates, err := u.provider.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	_ = ratesRedisSet(ctx, ratesCacheKey, string(rates), ratesCacheTTL)
	return rates, nil
}

// Mint submits a mint request on the user's behalf, signed with the user's
// own provider credentials. Users who have not completed onboarding cannot
// mint.
func (u *TransactionUsecase) Mint(ctx context.Context, userID string, input *entities.MintInput) (*idrx.MintData, error) {
	creds, err := u.credentials.CredentialsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.provider.MintRequest(ctx, creds, input)
}
