package tracking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
)

type entryRepository interface {
	ListForAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]models.TrackingEntry, error)
}

type profileFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
}

// Service exposes read access to an asset's tracking history.
type Service interface {
	ListForAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]EntryDTO, error)
}

type service struct {
	repo     entryRepository
	profiles profileFinder
}

// NewService builds a tracking service with the provided dependencies.
func NewService(repo entryRepository, profiles profileFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tracking repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile finder required")
	}
	return &service{repo: repo, profiles: profiles}, nil
}

func (s *service) ListForAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]EntryDTO, error) {
	rows, err := s.repo.ListForAsset(ctx, assetID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list tracking entries")
	}
	if len(rows) == 0 {
		return []EntryDTO{}, nil
	}

	names, err := s.resolveAuthors(ctx, rows)
	if err != nil {
		return nil, err
	}

	dtos := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, entryFromModel(&rows[i], names[rows[i].ChangedBy]))
	}
	return dtos, nil
}

// resolveAuthors maps entry authors to display names. Entries survive user
// deletion, so unresolved ids simply stay absent from the result.
func (s *service) resolveAuthors(ctx context.Context, rows []models.TrackingEntry) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ChangedBy]; ok {
			continue
		}
		seen[row.ChangedBy] = struct{}{}
		ids = append(ids, row.ChangedBy)
	}

	profiles, err := s.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "resolve entry authors")
	}

	names := make(map[uuid.UUID]string, len(profiles))
	for i := range profiles {
		names[profiles[i].ID] = displayName(&profiles[i])
	}
	return names, nil
}

func displayName(p *models.Profile) string {
	if p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
		return strings.TrimSpace(*p.FullName)
	}
	return p.Email
}
