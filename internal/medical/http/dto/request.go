// Package dto provides data transfer objects for medical HTTP request and
// response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
	customValidation "github.com/pitchside/medvault/internal/validation"
)

// CreateCaseRequest contains the parameters for creating a medical case.
// Details carries the sensitive clinical payload; it is encrypted before
// persistence and never echoed back.
type CreateCaseRequest struct {
	SubjectID   string         `json:"subject_id"`
	Type        string         `json:"type"`
	OnsetDate   time.Time      `json:"onset_date"`
	Severity    string         `json:"severity"`
	BodyArea    string         `json:"body_area"`
	IsAvailable bool           `json:"is_available"`
	Details     map[string]any `json:"details"`
}

// Validate checks if the create case request is valid.
func (r *CreateCaseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SubjectID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Type,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.OnsetDate,
			validation.Required,
		),
	)
}

// CreateGDPRRequestRequest contains the parameters for recording a
// data-subject rights request.
type CreateGDPRRequestRequest struct {
	SubjectID string `json:"subject_id"`
	Type      string `json:"type"`
	Details   string `json:"details"`
}

// Validate checks if the create GDPR request is valid.
func (r *CreateGDPRRequestRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SubjectID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Type,
			validation.Required,
			validation.In(
				medicalDomain.GDPRTypeAccess,
				medicalDomain.GDPRTypeErasure,
				medicalDomain.GDPRTypePortability,
				medicalDomain.GDPRTypeRectification,
			),
		),
		validation.Field(&r.Details,
			validation.Length(0, 10000),
		),
	)
}
