// Package http provides HTTP handlers for consent management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditHTTP "github.com/pitchside/medvault/internal/audit/http"
	"github.com/pitchside/medvault/internal/consent/http/dto"
	consentUseCase "github.com/pitchside/medvault/internal/consent/usecase"
	apperrors "github.com/pitchside/medvault/internal/errors"
	"github.com/pitchside/medvault/internal/httputil"
	customValidation "github.com/pitchside/medvault/internal/validation"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
)

// ConsentHandler handles HTTP requests for consent management.
type ConsentHandler struct {
	consentUseCase consentUseCase.ConsentUseCase
	logger         *slog.Logger
}

// NewConsentHandler creates a new consent handler with required dependencies.
func NewConsentHandler(useCase consentUseCase.ConsentUseCase, logger *slog.Logger) *ConsentHandler {
	return &ConsentHandler{
		consentUseCase: useCase,
		logger:         logger,
	}
}

// CreateHandler records a granted consent for a subject.
// POST /v1/consents - Requires MEDICAL role, active grant, second factor.
// Returns 201 Created with the consent record.
func (h *ConsentHandler) CreateHandler(c *gin.Context) {
	actor, ok := vaultHTTP.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	consent, err := h.consentUseCase.Create(c.Request.Context(), &consentUseCase.CreateConsentInput{
		TenantID:        actor.TenantID,
		SubjectID:       req.SubjectID,
		ConsentType:     req.ConsentType,
		ConsentFormText: req.ConsentFormText,
		GrantedBy:       actor.UserID,
		ExpiresAt:       req.ExpiresAt,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Set(auditHTTP.ResourceIDKey, consent.ID.String())

	h.logger.Info("consent recorded",
		slog.String("tenant_id", actor.TenantID),
		slog.String("consent_id", consent.ID.String()),
		slog.String("consent_type", consent.ConsentType))

	c.JSON(http.StatusCreated, dto.MapConsentToResponse(consent))
}
