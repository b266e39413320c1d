package tracking

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
)

// UnknownUser is rendered when a history entry's author no longer resolves.
const UnknownUser = "Unknown user"

// EntryDTO exposes one tracking history record with its author resolved.
type EntryDTO struct {
	ID            uuid.UUID        `json:"id"`
	AssetID       uuid.UUID        `json:"asset_id"`
	ChangeType    enums.ChangeType `json:"change_type"`
	OldValue      *string          `json:"old_value,omitempty"`
	NewValue      *string          `json:"new_value,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	ChangedBy     uuid.UUID        `json:"changed_by"`
	ChangedByName string           `json:"changed_by_name"`
	CreatedAt     time.Time        `json:"created_at"`
}

func entryFromModel(m *models.TrackingEntry, changedByName string) EntryDTO {
	if changedByName == "" {
		changedByName = UnknownUser
	}
	return EntryDTO{
		ID:            m.ID,
		AssetID:       m.AssetID,
		ChangeType:    m.ChangeType,
		OldValue:      m.OldValue,
		NewValue:      m.NewValue,
		Notes:         m.Notes,
		ChangedBy:     m.ChangedBy,
		ChangedByName: changedByName,
		CreatedAt:     m.CreatedAt,
	}
}
