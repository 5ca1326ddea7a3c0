// Package http provides HTTP handlers for protected medical records.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/pitchside/medvault/internal/audit/http"
	apperrors "github.com/pitchside/medvault/internal/errors"
	"github.com/pitchside/medvault/internal/httputil"
	"github.com/pitchside/medvault/internal/medical/http/dto"
	medicalUseCase "github.com/pitchside/medvault/internal/medical/usecase"
	customValidation "github.com/pitchside/medvault/internal/validation"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
)

// CaseHandler handles HTTP requests for medical cases.
type CaseHandler struct {
	medicalUseCase medicalUseCase.MedicalUseCase
	logger         *slog.Logger
}

// NewCaseHandler creates a new case handler with required dependencies.
func NewCaseHandler(useCase medicalUseCase.MedicalUseCase, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{
		medicalUseCase: useCase,
		logger:         logger,
	}
}

// CreateHandler creates a medical case through the protected write flow.
// POST /v1/cases - Requires MEDICAL role, active grant, second factor, and
// an active treatment consent for the subject.
// Returns 201 Created with {case_id, case_number}; the clinical detail is
// never echoed back.
func (h *CaseHandler) CreateHandler(c *gin.Context) {
	actor, ok := vaultHTTP.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	medicalCase, err := h.medicalUseCase.CreateCase(c.Request.Context(), &medicalUseCase.CreateCaseInput{
		TenantID:    actor.TenantID,
		SubjectID:   req.SubjectID,
		Type:        req.Type,
		OnsetDate:   req.OnsetDate,
		Severity:    req.Severity,
		BodyArea:    req.BodyArea,
		IsAvailable: req.IsAvailable,
		Details:     req.Details,
		CreatedBy:   actor.UserID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Set(auditHTTP.ResourceIDKey, medicalCase.CaseNumber)

	h.logger.Info("medical case created",
		slog.String("tenant_id", actor.TenantID),
		slog.String("case_number", medicalCase.CaseNumber))

	c.JSON(http.StatusCreated, dto.MapCaseToCreateResponse(medicalCase))
}

// GetHandler returns case metadata by id.
// GET /v1/cases/:id - Requires MEDICAL role and an active grant.
// Returns 200 with coarse metadata only, or 404.
func (h *CaseHandler) GetHandler(c *gin.Context) {
	actor, ok := vaultHTTP.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid case id"), h.logger)
		return
	}

	medicalCase, err := h.medicalUseCase.GetCase(c.Request.Context(), actor.TenantID, caseID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCaseToResponse(medicalCase))
}

// ListHandler returns paginated case metadata for the caller's tenant.
// GET /v1/cases?limit=&offset= - Requires MEDICAL role and an active grant.
func (h *CaseHandler) ListHandler(c *gin.Context) {
	actor, ok := vaultHTTP.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cases, err := h.medicalUseCase.ListCases(c.Request.Context(), actor.TenantID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCasesToListResponse(cases, limit, offset))
}
