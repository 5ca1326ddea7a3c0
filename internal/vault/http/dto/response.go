package dto

import (
	"time"

	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// GrantResponse represents an access grant in API responses.
type GrantResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	GrantedAt time.Time `json:"granted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapGrantToResponse converts a domain access grant to an API response.
func MapGrantToResponse(grant *vaultDomain.AccessGrant) GrantResponse {
	return GrantResponse{
		ID:        grant.ID.String(),
		TenantID:  grant.TenantID,
		UserID:    grant.UserID,
		Reason:    grant.Reason,
		GrantedAt: grant.GrantedAt,
		ExpiresAt: grant.ExpiresAt,
	}
}
