package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/enums"
)

// Profile represents the canonical identity entity.
type Profile struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FullName     *string        `gorm:"column:full_name"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:user"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
