package usecases_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/internal/usecases"
)

func TestGetRates_CachesResponse(t *testing.T) {
	setupRedis(t)

	provider := new(MockProvider)
	provider.On("GetRates", mock.Anything).
		Return(json.RawMessage(`{"buy":"15800","sell":"15900"}`), nil)

	uc := usecases.NewTransactionUsecase(provider, nil)

	rates, err := uc.GetRates(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"buy":"15800","sell":"15900"}`, string(rates))

	_, err = uc.GetRates(context.Background())
	require.NoError(t, err)
	provider.AssertNumberOfCalls(t, "GetRates", 1)
}

func TestGetRates_ProviderFailure(t *testing.T) {
	setupRedis(t)

	provider := new(MockProvider)
	provider.On("GetRates", mock.Anything).Return(nil, domainerrors.ErrProviderTransport)

	uc := usecases.NewTransactionUsecase(provider, nil)
	_, err := uc.GetRates(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrProviderTransport)
}

func TestMint_UsesUserCredentials(t *testing.T) {
	user := completeUser("wallet-1")
	user.IsVerified = true
	user.ProviderAPIKey = strPtr("k1")

	provider := new(MockProvider)
	provider.On("MintRequest", mock.Anything, idrx.Credentials{APIKey: "k1", APISecret: "s1"}, mock.Anything).
		Return(&idrx.MintData{ID: "tx1", PaymentURL: "https://pay"}, nil)

	creds := &stubCredentialSource{creds: idrx.Credentials{APIKey: "k1", APISecret: "s1"}}
	uc := usecases.NewTransactionUsecase(provider, creds)

	data, err := uc.Mint(context.Background(), "wallet-1", &entities.MintInput{Amount: "10000"})
	require.NoError(t, err)
	assert.Equal(t, "tx1", data.ID)
	assert.Equal(t, "wallet-1", creds.askedFor)
}

func TestMint_NotOnboarded(t *testing.T) {
	provider := new(MockProvider)
	uc := usecases.NewTransactionUsecase(provider, &stubCredentialSource{err: domainerrors.ErrNotOnboarded})

	_, err := uc.Mint(context.Background(), "wallet-1", &entities.MintInput{Amount: "10000"})
	assert.ErrorIs(t, err, domainerrors.ErrNotOnboarded)
	provider.AssertNotCalled(t, "MintRequest", mock.Anything, mock.Anything, mock.Anything)
}

type stubCredentialSource struct {
	creds    idrx.Credentials
	err      error
	askedFor string
}

func (s *stubCredentialSource) CredentialsFor(ctx context.Context, userID string) (idrx.Credentials, error) {
	s.askedFor = userID
	if s.err != nil {
		return idrx.Credentials{}, s.err
	}
	return s.creds, nil
}
