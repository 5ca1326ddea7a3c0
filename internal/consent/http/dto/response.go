package dto

import (
	"time"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
)

// ConsentResponse represents a consent record in API responses.
type ConsentResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	SubjectID   string     `json:"subject_id"`
	ConsentType string     `json:"consent_type"`
	LawfulBasis string     `json:"lawful_basis"`
	Status      string     `json:"status"`
	GrantedBy   string     `json:"granted_by"`
	GrantedAt   time.Time  `json:"granted_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// MapConsentToResponse converts a domain consent to an API response.
// The consent form text is excluded: it can contain free-text medical context.
func MapConsentToResponse(consent *consentDomain.Consent) ConsentResponse {
	return ConsentResponse{
		ID:          consent.ID.String(),
		TenantID:    consent.TenantID,
		SubjectID:   consent.SubjectID,
		ConsentType: consent.ConsentType,
		LawfulBasis: consent.LawfulBasis,
		Status:      string(consent.Status),
		GrantedBy:   consent.GrantedBy,
		GrantedAt:   consent.GrantedAt,
		ExpiresAt:   consent.ExpiresAt,
	}
}
