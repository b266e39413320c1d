package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
)

type profileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error
}

// Service exposes profile administration operations.
type Service interface {
	List(ctx context.Context, actor types.Actor) ([]ProfileDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProfileDTO, error)
	UpdateRole(ctx context.Context, actor types.Actor, targetID uuid.UUID, role enums.UserRole) (*ProfileDTO, error)
}

type service struct {
	repo profileRepository
}

// NewService builds a users service with the provided repository.
func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, actor types.Actor) ([]ProfileDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list profiles")
	}

	dtos := make([]ProfileDTO, 0, len(profiles))
	for i := range profiles {
		dtos = append(dtos, *FromModel(&profiles[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) UpdateRole(ctx context.Context, actor types.Actor, targetID uuid.UUID, role enums.UserRole) (*ProfileDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	// Lockout guard: an admin cannot take away their own admin role.
	if actor.ID == targetID && role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admins cannot demote themselves")
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update profile role")
	}

	profile, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reload profile")
	}
	return FromModel(profile), nil
}
