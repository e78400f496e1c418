package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	WalletAddress     string    `gorm:"type:varchar(64);not null"`
	UserName          *string   `gorm:"type:varchar(100)"`
	FullName          *string   `gorm:"type:varchar(255)"`
	PhysicalAddress   *string   `gorm:"type:varchar(500)"`
	IdentityNumber    *string   `gorm:"type:varchar(64)"`
	IdentityFile      *string   `gorm:"type:text"`
	ProviderAPIKey    *string   `gorm:"type:varchar(255)"`
	ProviderAPISecret *string   `gorm:"type:text"`
	IsVerified        bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}
