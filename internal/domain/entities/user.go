package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "idrx-gate.backend/internal/domain/errors"
)

// OnboardingState is derived from the identity record, never stored
type OnboardingState string

const (
	OnboardingStateNew             OnboardingState = "NEW"
	OnboardingStateProfileComplete OnboardingState = "PROFILE_COMPLETE"
	OnboardingStateOnboarded       OnboardingState = "ONBOARDED"
)

// User represents a wallet user and their onboarding identity record.
// FullName, PhysicalAddress, IdentityNumber and IdentityFile form the KYC
// bundle: once any of them is set, all four (and Email) are locked for good.
type User struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"userId"` // opaque wallet-provider identifier
	Email           string    `json:"email"`
	WalletAddress   string    `json:"walletAddress"`
	UserName        *string   `json:"userName,omitempty"`
	FullName        *string   `json:"fullName,omitempty"`
	PhysicalAddress *string   `json:"physicalAddress,omitempty"`
	IdentityNumber  *string   `json:"identityNumber,omitempty"`
	IdentityFile    *string   `json:"identityFile,omitempty"`

	// Provider credentials; secret is stored encrypted and never serialized
	ProviderAPIKey    *string `json:"-"`
	ProviderAPISecret *string `json:"-"`

	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// KYCBundleLocked reports whether any KYC bundle field has been set
func (u *User) KYCBundleLocked() bool {
	return u.FullName != nil || u.PhysicalAddress != nil || u.IdentityNumber != nil || u.IdentityFile != nil
}

// KYCBundleComplete reports whether all four KYC bundle fields are set
func (u *User) KYCBundleComplete() bool {
	return u.FullName != nil && u.PhysicalAddress != nil && u.IdentityNumber != nil && u.IdentityFile != nil
}

// OnboardingState derives the lifecycle state from the record
func (u *User) OnboardingState() OnboardingState {
	switch {
	case u.IsVerified && u.ProviderAPIKey != nil:
		return OnboardingStateOnboarded
	case u.KYCBundleComplete():
		return OnboardingStateProfileComplete
	default:
		return OnboardingStateNew
	}
}

// CreateUserInput represents input for registering a wallet user
type CreateUserInput struct {
	UserID        string `json:"userId" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	WalletAddress string `json:"address" binding:"required"`
}

// UpdateProfileInput is a partial profile update. Each field is a tagged
// presence: absent fields are left untouched, present fields are applied
// subject to the KYC bundle immutability rules.
type UpdateProfileInput struct {
	UserName        null.String `json:"userName"`
	Email           null.String `json:"email"`
	FullName        null.String `json:"fullName"`
	PhysicalAddress null.String `json:"physicalAddress"`
	IdentityNumber  null.String `json:"identityNumber"`
	IdentityFile    null.String `json:"identityFile"`
}

func (in *UpdateProfileInput) touchesBundle() bool {
	return in.FullName.Valid || in.PhysicalAddress.Valid || in.IdentityNumber.Valid || in.IdentityFile.Valid
}

func (in *UpdateProfileInput) bundleComplete() bool {
	return in.FullName.Valid && in.PhysicalAddress.Valid && in.IdentityNumber.Valid && in.IdentityFile.Valid
}

func (in *UpdateProfileInput) empty() bool {
	return !in.UserName.Valid && !in.Email.Valid && !in.touchesBundle()
}

// ApplyProfileUpdate applies a partial update to the record, enforcing the
// write-once KYC bundle. The update is atomic: if any requested change is
// rejected, the record is left unmodified and an error is returned.
func (u *User) ApplyProfileUpdate(in *UpdateProfileInput) error {
	if in.empty() {
		return domainerrors.ErrInvalidInput
	}

	locked := u.KYCBundleLocked()

	if in.touchesBundle() {
		if locked {
			return domainerrors.ErrImmutableField
		}
		// Bundle fields are only accepted all four at once
		if !in.bundleComplete() {
			return domainerrors.ErrInvalidInput
		}
		if in.FullName.String == "" || in.PhysicalAddress.String == "" ||
			in.IdentityNumber.String == "" || in.IdentityFile.String == "" {
			return domainerrors.ErrInvalidInput
		}
	}

	if in.Email.Valid {
		if locked {
			return domainerrors.ErrImmutableField
		}
		if in.Email.String == "" {
			return domainerrors.ErrInvalidInput
		}
	}

	// All checks passed, apply
	if in.touchesBundle() {
		u.FullName = ptr(in.FullName.String)
		u.PhysicalAddress = ptr(in.PhysicalAddress.String)
		u.IdentityNumber = ptr(in.IdentityNumber.String)
		u.IdentityFile = ptr(in.IdentityFile.String)
	}
	if in.Email.Valid {
		u.Email = in.Email.String
	}
	if in.UserName.Valid {
		u.UserName = ptr(in.UserName.String)
	}

	return nil
}

func ptr(s string) *string { return &s }

// UserProfile is the outward-facing projection of a user record.
// Provider credentials are never part of it.
type UserProfile struct {
	UserID          string          `json:"userId"`
	Email           string          `json:"email"`
	WalletAddress   string          `json:"address"`
	UserName        *string         `json:"userName"`
	FullName        *string         `json:"fullName"`
	PhysicalAddress *string         `json:"physicalAddress"`
	IdentityNumber  *string         `json:"identityNumber"`
	IsVerified      bool            `json:"isVerified"`
	State           OnboardingState `json:"onboardingState"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Profile returns the external projection of the record
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		UserID:          u.UserID,
		Email:           u.Email,
		WalletAddress:   u.WalletAddress,
		UserName:        u.UserName,
		FullName:        u.FullName,
		PhysicalAddress: u.PhysicalAddress,
		IdentityNumber:  u.IdentityNumber,
		IsVerified:      u.IsVerified,
		State:           u.OnboardingState(),
		CreatedAt:       u.CreatedAt,
	}
}
