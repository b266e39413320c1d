package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
)

// ProfileDTO exposes safe profile data in API responses.
type ProfileDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FullName  *string        `json:"full_name,omitempty"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateProfileDTO holds creation-time data for a new profile.
type CreateProfileDTO struct {
	Email        string
	PasswordHash string
	FullName     *string
	Role         enums.UserRole
}

// FromModel maps the persisted profile into a DTO.
func FromModel(m *models.Profile) *ProfileDTO {
	if m == nil {
		return nil
	}
	return &ProfileDTO{
		ID:        m.ID,
		Email:     m.Email,
		FullName:  m.FullName,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateProfileDTO) ToModel() *models.Profile {
	role := c.Role
	if role == "" {
		role = enums.UserRoleUser
	}
	return &models.Profile{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		Role:         role,
	}
}
