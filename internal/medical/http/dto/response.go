package dto

import (
	"time"

	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
)

// CreateCaseResponse is the minimal creation acknowledgement: the case id and
// its pseudonymous number, nothing clinical.
type CreateCaseResponse struct {
	CaseID     string `json:"case_id"`
	CaseNumber string `json:"case_number"`
}

// CaseResponse represents case metadata in API responses. Only coarse,
// irreversible fields appear; the encrypted payload stays out.
type CaseResponse struct {
	ID             string    `json:"id"`
	SubjectID      string    `json:"subject_id"`
	CaseNumber     string    `json:"case_number"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	OnsetDate      time.Time `json:"onset_date"`
	IsAvailable    bool      `json:"is_available"`
	BodyAreaHash   string    `json:"body_area_hash,omitempty"`
	SeverityBucket string    `json:"severity_bucket,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapCaseToCreateResponse converts a created case to its acknowledgement.
func MapCaseToCreateResponse(medicalCase *medicalDomain.Case) CreateCaseResponse {
	return CreateCaseResponse{
		CaseID:     medicalCase.ID.String(),
		CaseNumber: medicalCase.CaseNumber,
	}
}

// MapCaseToResponse converts a domain case to its metadata response.
func MapCaseToResponse(medicalCase *medicalDomain.Case) CaseResponse {
	return CaseResponse{
		ID:             medicalCase.ID.String(),
		SubjectID:      medicalCase.SubjectID,
		CaseNumber:     medicalCase.CaseNumber,
		Type:           medicalCase.Type,
		Status:         medicalCase.Status,
		OnsetDate:      medicalCase.OnsetDate,
		IsAvailable:    medicalCase.IsAvailable,
		BodyAreaHash:   medicalCase.BodyAreaHash,
		SeverityBucket: medicalCase.SeverityBucket,
		CreatedAt:      medicalCase.CreatedAt,
		UpdatedAt:      medicalCase.UpdatedAt,
	}
}

// ListCasesResponse is the paginated case metadata listing.
type ListCasesResponse struct {
	Cases  []CaseResponse `json:"cases"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// MapCasesToListResponse converts domain cases to a listing response.
func MapCasesToListResponse(cases []*medicalDomain.Case, limit, offset int) ListCasesResponse {
	out := make([]CaseResponse, 0, len(cases))
	for _, medicalCase := range cases {
		out = append(out, MapCaseToResponse(medicalCase))
	}
	return ListCasesResponse{Cases: out, Limit: limit, Offset: offset}
}

// GDPRRequestResponse represents a subject request in API responses.
type GDPRRequestResponse struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MapGDPRRequestToResponse converts a domain GDPR request to an API response.
func MapGDPRRequestToResponse(request *medicalDomain.GDPRRequest) GDPRRequestResponse {
	return GDPRRequestResponse{
		ID:        request.ID.String(),
		SubjectID: request.SubjectID,
		Type:      request.Type,
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
	}
}
