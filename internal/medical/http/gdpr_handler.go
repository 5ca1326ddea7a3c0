package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditHTTP "github.com/pitchside/medvault/internal/audit/http"
	apperrors "github.com/pitchside/medvault/internal/errors"
	"github.com/pitchside/medvault/internal/httputil"
	"github.com/pitchside/medvault/internal/medical/http/dto"
	medicalUseCase "github.com/pitchside/medvault/internal/medical/usecase"
	customValidation "github.com/pitchside/medvault/internal/validation"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
)

// GDPRRequestHandler handles HTTP requests for data-subject rights requests.
type GDPRRequestHandler struct {
	medicalUseCase medicalUseCase.MedicalUseCase
	logger         *slog.Logger
}

// NewGDPRRequestHandler creates a new GDPR request handler.
func NewGDPRRequestHandler(useCase medicalUseCase.MedicalUseCase, logger *slog.Logger) *GDPRRequestHandler {
	return &GDPRRequestHandler{
		medicalUseCase: useCase,
		logger:         logger,
	}
}

// CreateHandler records a data-subject rights request.
// POST /v1/gdpr-requests - Requires MEDICAL role, active grant, second
// factor. No consent check: GDPR rights are their own lawful basis.
// Returns 201 Created.
func (h *GDPRRequestHandler) CreateHandler(c *gin.Context) {
	actor, ok := vaultHTTP.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateGDPRRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	request, err := h.medicalUseCase.CreateGDPRRequest(c.Request.Context(), &medicalUseCase.CreateGDPRRequestInput{
		TenantID:  actor.TenantID,
		SubjectID: req.SubjectID,
		Type:      req.Type,
		Details:   req.Details,
		CreatedBy: actor.UserID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Set(auditHTTP.ResourceIDKey, request.ID.String())

	h.logger.Info("gdpr request recorded",
		slog.String("tenant_id", actor.TenantID),
		slog.String("request_id", request.ID.String()),
		slog.String("type", request.Type))

	c.JSON(http.StatusCreated, dto.MapGDPRRequestToResponse(request))
}
