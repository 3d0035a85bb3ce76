// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	actorKey     struct{}
	requestIDKey struct{}
)

// roleManager matches domain.UserRoleManager; ctxutil stays free of domain imports.
const roleManager = "manager"

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// WithActor stores the acting user's ID and role.
func WithActor(ctx context.Context, id uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, actorKey{}, Actor{UserID: id, Role: role})
}

// WithUserID stores an actor without a role. Role-gated checks treat it as unprivileged.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return WithActor(ctx, id, "")
}

// ActorFromCtx returns the actor and whether one with a non-nil ID is present.
func ActorFromCtx(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || a.UserID == uuid.Nil {
		return Actor{}, false
	}
	return a, true
}

// UserIDFromCtx extracts the acting user ID. Returns uuid.Nil and false when absent.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	a, ok := ActorFromCtx(ctx)
	return a.UserID, ok
}

// RoleFromCtx extracts the acting user's role. Empty if absent.
func RoleFromCtx(ctx context.Context) string {
	a, _ := ActorFromCtx(ctx)
	return a.Role
}

func IsManagerCtx(ctx context.Context) bool {
	return RoleFromCtx(ctx) == roleManager
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx extracts the request ID. Empty if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
