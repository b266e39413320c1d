package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db"
	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/pagination"
	"github.com/rmartell/inventra-backend/pkg/types"
)

// codeRetryAttempts bounds how often Create retries a display-code collision
// caused by a concurrent insert for the same year.
const codeRetryAttempts = 3

type assetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	FindRowByID(ctx context.Context, id uuid.UUID) (*AssetRow, error)
	FindRowByCode(ctx context.Context, code string) (*AssetRow, error)
	List(ctx context.Context, filter ListFilter) ([]AssetRow, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MaxSequenceForYear(ctx context.Context, year int) (int, error)
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Asset, error)
	UpdateWithTx(tx *gorm.DB, asset *models.Asset) error
}

type refLookup interface {
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindDepartmentByID(ctx context.Context, id uuid.UUID) (*models.Department, error)
}

type historyAppender interface {
	AppendWithTx(tx *gorm.DB, entry *models.TrackingEntry) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the asset lifecycle.
type Service interface {
	Create(ctx context.Context, actor types.Actor, in CreateInput) (*AssetDTO, error)
	List(ctx context.Context, actor types.Actor, query ListQuery) ([]AssetDTO, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*AssetDTO, error)
	GetByCode(ctx context.Context, actor types.Actor, code string) (*AssetDTO, error)
	UpdateTracking(ctx context.Context, actor types.Actor, assetID uuid.UUID, in TrackingUpdateInput) (*AssetDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
}

type service struct {
	repo    assetRepository
	refs    refLookup
	history historyAppender
	tx      txRunner
}

// NewService builds the asset lifecycle service.
func NewService(repo assetRepository, refs refLookup, history historyAppender, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if refs == nil {
		return nil, fmt.Errorf("reference data lookup required")
	}
	if history == nil {
		return nil, fmt.Errorf("history appender required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, refs: refs, history: history, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, in CreateInput) (*AssetDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset name is required")
	}
	if in.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}
	if in.PurchaseDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase date is required")
	}
	if err := s.checkReferences(ctx, in.CategoryID, in.DepartmentID); err != nil {
		return nil, err
	}

	asset := models.Asset{
		ID:              uuid.New(),
		Name:            name,
		CategoryID:      in.CategoryID,
		DepartmentID:    in.DepartmentID,
		PurchaseDate:    in.PurchaseDate,
		Cost:            in.Cost,
		ImageURL:        in.ImageURL,
		Status:          enums.AssetStatusAvailable,
		CurrentLocation: in.CurrentLocation,
		CreatedBy:       actor.ID,
	}

	year := time.Now().UTC().Year()
	var lastErr error
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		seq, err := s.repo.MaxSequenceForYear(ctx, year)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "allocate asset code")
		}
		asset.AssetCode = fmt.Sprintf("%s-%d-%03d", assetCodePrefix, year, seq+1)

		err = s.repo.Create(ctx, &asset)
		if err == nil {
			lastErr = nil
			break
		}
		if db.IsUniqueViolation(err, "idx_assets_asset_code") {
			lastErr = err
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create asset")
	}
	if lastErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, lastErr, "allocate asset code")
	}

	row, err := s.repo.FindRowByID(ctx, asset.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load created asset")
	}
	dto := dtoFromRow(row)
	return &dto, nil
}

func (s *service) List(ctx context.Context, actor types.Actor, query ListQuery) ([]AssetDTO, error) {
	params := pagination.Normalize(query.Pagination)
	filter := ListFilter{
		NameContains: query.NameContains,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	if !actor.IsAdmin() {
		owner := actor.ID
		filter.OwnerID = &owner
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list assets")
	}
	dtos := make([]AssetDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dtoFromRow(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*AssetDTO, error) {
	row, err := s.repo.FindRowByID(ctx, id)
	if err != nil {
		return nil, assetLookupError(err)
	}
	if !actor.IsAdmin() && row.CreatedBy != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the asset owner")
	}
	dto := dtoFromRow(row)
	return &dto, nil
}

// GetByCode backs the tracker screen. Any authenticated user may resolve an
// asset by its display code.
func (s *service) GetByCode(ctx context.Context, _ types.Actor, code string) (*AssetDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset code is required")
	}
	row, err := s.repo.FindRowByCode(ctx, code)
	if err != nil {
		return nil, assetLookupError(err)
	}
	dto := dtoFromRow(row)
	return &dto, nil
}

func (s *service) UpdateTracking(ctx context.Context, actor types.Actor, assetID uuid.UUID, in TrackingUpdateInput) (*AssetDTO, error) {
	var newStatus enums.AssetStatus
	if in.Status != nil {
		parsed, err := enums.ParseAssetStatus(*in.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		newStatus = parsed
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		asset, err := s.repo.FindByIDWithTx(tx, assetID)
		if err != nil {
			return assetLookupError(err)
		}
		if !actor.IsAdmin() && asset.CreatedBy != actor.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not the asset owner")
		}

		entries := make([]models.TrackingEntry, 0, 3)
		dirty := false

		if in.Status != nil && newStatus != asset.Status {
			entries = append(entries, models.TrackingEntry{
				ChangeType: enums.ChangeTypeStatus,
				OldValue:   strPtr(asset.Status.String()),
				NewValue:   strPtr(newStatus.String()),
			})
			asset.Status = newStatus
			dirty = true
		}

		if in.Location != nil {
			newLocation := strings.TrimSpace(*in.Location)
			if newLocation != derefOrEmpty(asset.CurrentLocation) {
				entries = append(entries, models.TrackingEntry{
					ChangeType: enums.ChangeTypeLocation,
					OldValue:   strPtr(derefOrEmpty(asset.CurrentLocation)),
					NewValue:   strPtr(newLocation),
				})
				asset.CurrentLocation = optionalPtr(newLocation)
				dirty = true
			}
		}

		// Warranty writes are monotonic and never produce a history entry.
		if in.WarrantyStatus != nil {
			if w := strings.TrimSpace(*in.WarrantyStatus); w != "" && w != derefOrEmpty(asset.WarrantyStatus) {
				asset.WarrantyStatus = &w
				dirty = true
			}
		}

		if in.Notes != nil {
			if notes := strings.TrimSpace(*in.Notes); notes != "" {
				entries = append(entries, models.TrackingEntry{
					ChangeType: enums.ChangeTypeManual,
					NewValue:   strPtr(notes),
					Notes:      strPtr(notes),
				})
			}
		}

		if !dirty && len(entries) == 0 {
			return nil
		}

		if dirty {
			if err := s.repo.UpdateWithTx(tx, asset); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update asset")
			}
		}
		for i := range entries {
			entries[i].ID = uuid.New()
			entries[i].AssetID = asset.ID
			entries[i].ChangedBy = actor.ID
			if err := s.history.AppendWithTx(tx, &entries[i]); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "append history entry")
			}
		}
		return nil
	})
	if txErr != nil {
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, txErr, "update asset tracking")
	}

	row, err := s.repo.FindRowByID(ctx, assetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load updated asset")
	}
	dto := dtoFromRow(row)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return assetLookupError(err)
	}
	return nil
}

func (s *service) checkReferences(ctx context.Context, categoryID, departmentID uuid.UUID) error {
	if _, err := s.refs.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "check category")
	}
	if _, err := s.refs.FindDepartmentByID(ctx, departmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown department")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "check department")
	}
	return nil
}

func assetLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load asset")
}

func strPtr(v string) *string { return &v }

func derefOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
