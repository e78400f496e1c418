package usecases

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/domain/repositories"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/pkg/metrics"
	"idrx-gate.backend/pkg/redis"
)

// onboardingLockTTL bounds how long a crashed onboarding attempt can block
// retries for the same user.
const onboardingLockTTL = 30 * time.Second

var (
	onboardingRedisSetNX = redis.SetNX
	onboardingRedisDel   = redis.Del

	onboardingRandReader io.Reader = rand.Reader
)

// onboardingProvider is the slice of the provider client this usecase needs
type onboardingProvider interface {
	Onboard(ctx context.Context, input idrx.OnboardInput) (*idrx.OnboardData, error)
}

// OnboardingUsecase drives the provider registration lifecycle and owns the
// per-user provider credentials at rest.
type OnboardingUsecase struct {
	userRepo      repositories.UserRepository
	provider      onboardingProvider
	encryptionKey []byte // 32 bytes for AES-256
}

// NewOnboardingUsecase creates a new onboarding usecase. encryptionKeyHex
// must decode to 32 bytes.
func NewOnboardingUsecase(
	userRepo repositories.UserRepository,
	provider onboardingProvider,
	encryptionKeyHex string,
) (*OnboardingUsecase, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil || len(key) != 32 {
		return nil, errors.New("credential encryption key must be 64 hex chars")
	}
	return &OnboardingUsecase{
		userRepo:      userRepo,
		provider:      provider,
		encryptionKey: key,
	}, nil
}

// Onboard registers the user with the provider and persists the returned
// credentials. At most one attempt can succeed: concurrent triggers are
// serialized by a Redis lock, and the credential write itself re-checks the
// verified flag. A provider failure leaves the record untouched so the user
// can retry.
func (u *OnboardingUsecase) Onboard(ctx context.Context, userID string) (*entities.UserProfile, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, domainerrors.ErrAlreadyOnboarded
	}
	if !user.KYCBundleComplete() {
		return nil, fmt.Errorf("%w: profile is incomplete", domainerrors.ErrInvalidInput)
	}

	lockKey := "onboarding:" + userID
	acquired, err := onboardingRedisSetNX(ctx, lockKey, "processing", onboardingLockTTL)
	if err == nil && !acquired {
		return nil, domainerrors.ErrOnboardingInProgress
	}
	// On a Redis failure we proceed; the is_verified guard in the credential
	// write is the authoritative at-most-once barrier.
	defer func() {
		_ = onboardingRedisDel(ctx, lockKey)
	}()

	data, err := u.provider.Onboard(ctx, idrx.OnboardInput{
		Email:        user.Email,
		FullName:     *user.FullName,
		Address:      *user.PhysicalAddress,
		IDNumber:     *user.IdentityNumber,
		IDFileBase64: *user.IdentityFile,
	})
	if err != nil {
		return nil, err
	}

	secretEncrypted, err := u.encrypt(data.APISecret)
	if err != nil {
		return nil, domainerrors.InternalError(fmt.Errorf("encrypt provider secret: %w", err))
	}

	if err := u.userRepo.SetProviderCredentials(ctx, userID, data.APIKey, secretEncrypted); err != nil {
		return nil, err
	}
	metrics.OnboardingCompleted.Inc()

	user, err = u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// CredentialsFor returns the user's decrypted provider credentials.
// Not-yet-onboarded users get ErrNotOnboarded.
func (u *OnboardingUsecase) CredentialsFor(ctx context.Context, userID string) (idrx.Credentials, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return idrx.Credentials{}, err
	}
	if !user.IsVerified || user.ProviderAPIKey == nil || user.ProviderAPISecret == nil {
		return idrx.Credentials{}, domainerrors.ErrNotOnboarded
	}

	secret, err := u.decrypt(*user.ProviderAPISecret)
	if err != nil {
		return idrx.Credentials{}, domainerrors.InternalError(fmt.Errorf("decrypt provider secret: %w", err))
	}
	return idrx.Credentials{APIKey: *user.ProviderAPIKey, APISecret: secret}, nil
}

func (u *OnboardingUsecase) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(u.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(onboardingRandReader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

func (u *OnboardingUsecase) decrypt(ciphertextHex string) (string, error) {
	data, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(u.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("malformed ciphertext")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
