// Package http provides HTTP handlers and middleware for the vault gate:
// caller identity, medical-role checks, the second-factor check, and the
// unlock/lock endpoints.
package http

import (
	"context"
	"slices"
)

// Roles recognized on the X-Roles header.
const (
	RoleMedical      = "MEDICAL"
	RoleMedicalAdmin = "MEDICAL_ADMIN"
)

// Actor is the caller identity established by the identity middleware from
// trusted upstream headers.
type Actor struct {
	UserID   string
	TenantID string
	Roles    []string
}

// HasMedicalRole reports whether the actor may touch medical data.
// MEDICAL_ADMIN implies MEDICAL.
func (a *Actor) HasMedicalRole() bool {
	return slices.Contains(a.Roles, RoleMedical) || slices.Contains(a.Roles, RoleMedicalAdmin)
}

// IsMedicalAdmin reports whether the actor holds the admin medical role.
func (a *Actor) IsMedicalAdmin() bool {
	return slices.Contains(a.Roles, RoleMedicalAdmin)
}

// actorKey is a context key type for storing the caller identity.
type actorKey struct{}

// WithActor stores the caller identity in the context.
// This is typically called by the identity middleware.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor retrieves the caller identity from the context.
// Returns (actor, true) if present, or (nil, false) if no identity was set.
func GetActor(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*Actor)
	return actor, ok
}
