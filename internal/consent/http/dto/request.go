// Package dto provides data transfer objects for consent HTTP request and
// response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	customValidation "github.com/pitchside/medvault/internal/validation"
)

// CreateConsentRequest contains the parameters for recording a consent.
type CreateConsentRequest struct {
	SubjectID       string     `json:"subject_id"`
	ConsentType     string     `json:"consent_type"`
	ConsentFormText string     `json:"consent_form_text"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// Validate checks if the create consent request is valid.
func (r *CreateConsentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SubjectID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ConsentType,
			validation.Required,
			validation.In(consentDomain.TypeTreatment, consentDomain.TypeDataProcessing),
		),
		validation.Field(&r.ConsentFormText,
			validation.Length(0, 10000),
		),
	)
}
