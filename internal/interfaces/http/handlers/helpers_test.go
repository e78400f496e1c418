package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"idrx-gate.backend/internal/domain/entities"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/internal/interfaces/http/middleware"
)

func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

type userServiceStub struct {
	createFn func(context.Context, *entities.CreateUserInput) (*entities.UserProfile, error)
	getFn    func(context.Context, string) (*entities.UserProfile, error)
	updateFn func(context.Context, string, *entities.UpdateProfileInput) (*entities.UserProfile, error)
}

func (s userServiceStub) CreateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.UserProfile, error) {
	return s.createFn(ctx, input)
}

func (s userServiceStub) GetProfile(ctx context.Context, userID string) (*entities.UserProfile, error) {
	return s.getFn(ctx, userID)
}

func (s userServiceStub) UpdateProfile(ctx context.Context, userID string, input *entities.UpdateProfileInput) (*entities.UserProfile, error) {
	return s.updateFn(ctx, userID, input)
}

type onboardingServiceStub struct {
	onboardFn func(context.Context, string) (*entities.UserProfile, error)
}

func (s onboardingServiceStub) Onboard(ctx context.Context, userID string) (*entities.UserProfile, error) {
	return s.onboardFn(ctx, userID)
}

type bankAccountServiceStub struct {
	listBanksFn    func(context.Context) ([]idrx.BankInfo, error)
	listAccountsFn func(context.Context, string) ([]*entities.BankAccount, error)
	linkFn         func(context.Context, string, *entities.LinkBankAccountInput) (*entities.BankAccount, error)
	unlinkFn       func(context.Context, string, uuid.UUID) error
}

func (s bankAccountServiceStub) ListBanks(ctx context.Context) ([]idrx.BankInfo, error) {
	return s.listBanksFn(ctx)
}

func (s bankAccountServiceStub) ListAccounts(ctx context.Context, userID string) ([]*entities.BankAccount, error) {
	return s.listAccountsFn(ctx, userID)
}

func (s bankAccountServiceStub) LinkAccount(ctx context.Context, userID string, input *entities.LinkBankAccountInput) (*entities.BankAccount, error) {
	return s.linkFn(ctx, userID, input)
}

func (s bankAccountServiceStub) UnlinkAccount(ctx context.Context, userID string, accountID uuid.UUID) error {
	return s.unlinkFn(ctx, userID, accountID)
}

type transactionServiceStub struct {
	ratesFn func(context.Context) (json.RawMessage, error)
	mintFn  func(context.Context, string, *entities.MintInput) (*idrx.MintData, error)
}

func (s transactionServiceStub) GetRates(ctx context.Context) (json.RawMessage, error) {
	return s.ratesFn(ctx)
}

func (s transactionServiceStub) Mint(ctx context.Context, userID string, input *entities.MintInput) (*idrx.MintData, error) {
	return s.mintFn(ctx, userID, input)
}

func profileFor(userID string) *entities.UserProfile {
	return &entities.UserProfile{
		UserID:        userID,
		Email:         "jane@example.com",
		WalletAddress: "0x52908400098527886E0F7030069857D2E4169EE7",
		State:         entities.OnboardingStateNew,
	}
}
