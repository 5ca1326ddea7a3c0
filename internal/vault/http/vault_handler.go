package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pitchside/medvault/internal/errors"
	"github.com/pitchside/medvault/internal/httputil"
	customValidation "github.com/pitchside/medvault/internal/validation"
	"github.com/pitchside/medvault/internal/vault/http/dto"
	vaultUseCase "github.com/pitchside/medvault/internal/vault/usecase"
)

// VaultHandler handles HTTP requests for the vault lifecycle: enabling
// passphrase protection, unlocking, and locking.
type VaultHandler struct {
	keyManager vaultUseCase.KeyManagerUseCase
	access     vaultUseCase.AccessUseCase
	logger     *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(
	keyManager vaultUseCase.KeyManagerUseCase,
	access vaultUseCase.AccessUseCase,
	logger *slog.Logger,
) *VaultHandler {
	return &VaultHandler{
		keyManager: keyManager,
		access:     access,
		logger:     logger,
	}
}

// EnableHandler sets or replaces the tenant's vault passphrase.
// POST /v1/vault/enable - Requires MEDICAL role.
// Returns 204 No Content on success.
func (h *VaultHandler) EnableHandler(c *gin.Context) {
	actor, ok := GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.EnableVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.keyManager.SetPassphrase(c.Request.Context(), actor.TenantID, req.Passphrase, req.Hint); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("vault passphrase enabled",
		slog.String("tenant_id", actor.TenantID),
		slog.String("user_id", actor.UserID))

	c.Status(http.StatusNoContent)
}

// UnlockHandler verifies the passphrase and issues a time-boxed access grant.
// POST /v1/vault/unlock - Requires MEDICAL role.
// Returns 201 Created with the grant, or 401 on a wrong passphrase.
func (h *VaultHandler) UnlockHandler(c *gin.Context) {
	actor, ok := GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.UnlockVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	grant, err := h.access.Unlock(c.Request.Context(), actor.TenantID, actor.UserID, req.Passphrase, req.Reason)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("vault unlocked",
		slog.String("tenant_id", actor.TenantID),
		slog.String("user_id", actor.UserID),
		slog.Time("expires_at", grant.ExpiresAt))

	c.JSON(http.StatusCreated, dto.MapGrantToResponse(grant))
}

// LockHandler revokes every active grant the caller holds for the tenant.
// POST /v1/vault/lock - Requires MEDICAL role.
// Returns 204 No Content; locking an already-locked vault is a success.
func (h *VaultHandler) LockHandler(c *gin.Context) {
	actor, ok := GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.access.Lock(c.Request.Context(), actor.TenantID, actor.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("vault locked",
		slog.String("tenant_id", actor.TenantID),
		slog.String("user_id", actor.UserID))

	c.Status(http.StatusNoContent)
}
