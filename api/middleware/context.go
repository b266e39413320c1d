package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/enums"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the acting user's identity into the context.
func WithActor(ctx context.Context, userID, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	return context.WithValue(ctx, ctxRole, role)
}

// ActorFromContext rebuilds the typed actor seeded by the Auth middleware.
func ActorFromContext(ctx context.Context) (types.Actor, error) {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return types.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	role, err := enums.ParseUserRole(RoleFromContext(ctx))
	if err != nil {
		return types.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return types.Actor{ID: id, Role: role}, nil
}
