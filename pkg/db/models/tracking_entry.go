package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/enums"
)

// TrackingEntry is an append-only history record for a single asset change.
// ChangedBy is a weak reference; entries outlive the acting user.
type TrackingEntry struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetID    uuid.UUID        `gorm:"column:asset_id;type:uuid;not null;index"`
	ChangedBy  uuid.UUID        `gorm:"column:changed_by;type:uuid;not null"`
	ChangeType enums.ChangeType `gorm:"column:change_type;type:text;not null"`
	OldValue   *string          `gorm:"column:old_value"`
	NewValue   *string          `gorm:"column:new_value"`
	Notes      *string          `gorm:"column:notes"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}
