package refdata

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/db/models"
)

// DepartmentDTO exposes department data in API responses.
type DepartmentDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryDTO exposes category data in API responses.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput holds creation-time data for a department or category.
type CreateInput struct {
	Name        string
	Description *string
}

func departmentFromModel(m *models.Department) *DepartmentDTO {
	if m == nil {
		return nil
	}
	return &DepartmentDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func categoryFromModel(m *models.Category) *CategoryDTO {
	if m == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
