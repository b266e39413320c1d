package types

import (
	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/enums"
)

// Actor identifies the authenticated principal a request runs as.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}
