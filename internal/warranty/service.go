package warranty

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
	"github.com/rmartell/inventra-backend/pkg/warranty"
)

type registrationGateway interface {
	Register(ctx context.Context, req warranty.RegisterRequest) (map[string]any, error)
}

type assetStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	SetWarrantyStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Service registers an asset's warranty with the external provider and
// records the outcome locally.
type Service interface {
	Register(ctx context.Context, actor types.Actor, assetID uuid.UUID) (map[string]any, error)
}

type service struct {
	gateway registrationGateway
	assets  assetStore
}

// NewService builds the warranty registration service.
func NewService(gateway registrationGateway, assets assetStore) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("registration gateway required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset store required")
	}
	return &service{gateway: gateway, assets: assets}, nil
}

// Register is a one-shot call-through. On provider failure nothing local is
// mutated; the caller may simply re-invoke. Warranty changes never produce
// a tracking history entry.
func (s *service) Register(ctx context.Context, actor types.Actor, assetID uuid.UUID) (map[string]any, error) {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load asset")
	}
	if !actor.IsAdmin() && asset.CreatedBy != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the asset owner")
	}
	if asset.WarrantyStatus != nil && *asset.WarrantyStatus != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warranty already registered")
	}

	// The provider has no notion of our internal ids; the serial number is
	// derived from the asset id.
	payload, err := s.gateway.Register(ctx, warranty.RegisterRequest{
		AssetID:      asset.AssetCode,
		AssetName:    asset.Name,
		SerialNumber: asset.ID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.assets.SetWarrantyStatus(ctx, asset.ID, models.WarrantyRegistered); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist warranty status")
	}
	return payload, nil
}
