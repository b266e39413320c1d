package tracking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
)

// Repository handles tracking history persistence. Entries are append-only;
// there is deliberately no update or delete surface.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to tracking operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AppendWithTx inserts a history entry inside the caller's transaction.
func (r *Repository) AppendWithTx(tx *gorm.DB, entry *models.TrackingEntry) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	return tx.Create(entry).Error
}

// ListForAsset returns entries for the asset, newest first. A non-positive
// limit returns the full history.
func (r *Repository) ListForAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]models.TrackingEntry, error) {
	q := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []models.TrackingEntry
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
