package usecases

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/domain/repositories"
)

// UserUsecase handles wallet user registration and profile management
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// CreateUser registers a wallet user. The wallet address is validated and
// stored in EIP-55 checksum form.
func (u *UserUsecase) CreateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.UserProfile, error) {
	if !common.IsHexAddress(input.WalletAddress) {
		return nil, domainerrors.BadRequest("invalid wallet address")
	}

	user := &entities.User{
		UserID:        input.UserID,
		Email:         input.Email,
		WalletAddress: common.HexToAddress(input.WalletAddress).Hex(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// GetProfile returns the external projection of a user record
func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (*entities.UserProfile, error) {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// UpdateProfile applies a partial profile update under the write-once KYC
// bundle rules. The check and the write share one row-locked transaction so
// concurrent updates cannot slip past the immutability check.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, input *entities.UpdateProfileInput) (*entities.UserProfile, error) {
	user, err := u.userRepo.UpdateLocked(ctx, userID, func(record *entities.User) error {
		return record.ApplyProfileUpdate(input)
	})
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}
