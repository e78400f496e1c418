package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}

// Create creates a new user record
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m := r.toModel(user)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateErr(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserID gets a user by their wallet identifier
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateLocked loads the user under a row lock, applies mutate, and persists
// the result within one transaction. The lock keeps concurrent profile
// updates from interleaving between the immutability check and the write.
func (r *UserRepository) UpdateLocked(ctx context.Context, userID string, mutate func(*entities.User) error) (*entities.User, error) {
	var updated *entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var m models.User
		if err := query.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}

		user := r.toEntity(&m)
		if err := mutate(user); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"email":            user.Email,
			"user_name":        user.UserName,
			"full_name":        user.FullName,
			"physical_address": user.PhysicalAddress,
			"identity_number":  user.IdentityNumber,
			"identity_file":    user.IdentityFile,
			"updated_at":       time.Now(),
		}
		if err := tx.Model(&models.User{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			if isDuplicateErr(err) {
				return domainerrors.ErrAlreadyExists
			}
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetProviderCredentials stores the per-user provider credentials and flips
// the verified flag. The is_verified guard in the WHERE clause makes the
// transition at-most-once even under concurrent onboarding attempts.
func (r *UserRepository) SetProviderCredentials(ctx context.Context, userID, apiKey, apiSecretEncrypted string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ? AND is_verified = ?", userID, false).
		Updates(map[string]interface{}{
			"provider_api_key":    apiKey,
			"provider_api_secret": apiSecretEncrypted,
			"is_verified":         true,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrAlreadyOnboarded
	}
	return nil
}

func (r *UserRepository) toModel(user *entities.User) *models.User {
	return &models.User{
		ID:                user.ID,
		UserID:            user.UserID,
		Email:             user.Email,
		WalletAddress:     user.WalletAddress,
		UserName:          user.UserName,
		FullName:          user.FullName,
		PhysicalAddress:   user.PhysicalAddress,
		IdentityNumber:    user.IdentityNumber,
		IdentityFile:      user.IdentityFile,
		ProviderAPIKey:    user.ProviderAPIKey,
		ProviderAPISecret: user.ProviderAPISecret,
		IsVerified:        user.IsVerified,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                m.ID,
		UserID:            m.UserID,
		Email:             m.Email,
		WalletAddress:     m.WalletAddress,
		UserName:          m.UserName,
		FullName:          m.FullName,
		PhysicalAddress:   m.PhysicalAddress,
		IdentityNumber:    m.IdentityNumber,
		IdentityFile:      m.IdentityFile,
		ProviderAPIKey:    m.ProviderAPIKey,
		ProviderAPISecret: m.ProviderAPISecret,
		IsVerified:        m.IsVerified,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
