package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pitchside/medvault/internal/errors"
	"github.com/pitchside/medvault/internal/httputil"
	vaultUseCase "github.com/pitchside/medvault/internal/vault/usecase"
)

// Trusted identity headers set by the upstream gateway.
const (
	HeaderUserID   = "X-User-Id"
	HeaderTenantID = "X-Tenant-Id"
	HeaderRoles    = "X-Roles"

	// HeaderSecondFactor carries the already-verified second-factor code.
	HeaderSecondFactor = "X-2FA-Code"
)

// IdentityMiddleware establishes the caller identity from trusted headers.
//
// The gateway in front of this service authenticates the user and forwards
// identity as headers; this middleware only translates them into an Actor.
//
// Error handling:
//   - Missing X-User-Id or X-Tenant-Id → 401 Unauthorized
func IdentityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		tenantID := c.GetHeader(HeaderTenantID)
		if userID == "" || tenantID == "" {
			logger.Debug("identity middleware: missing identity headers")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		actor := &Actor{
			UserID:   userID,
			TenantID: tenantID,
			Roles:    splitRoles(c.GetHeader(HeaderRoles)),
		}

		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// splitRoles parses the comma-separated X-Roles header.
func splitRoles(header string) []string {
	if header == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		if role := strings.TrimSpace(part); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// RequireMedicalRoleMiddleware rejects callers without a medical role.
//
// MUST be used after IdentityMiddleware.
//
// Error handling:
//   - No actor in context → 401 Unauthorized
//   - Actor without MEDICAL or MEDICAL_ADMIN → 403 Forbidden
func RequireMedicalRoleMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c.Request.Context())
		if !ok {
			logger.Error("role middleware: no actor in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !actor.HasMedicalRole() {
			logger.Debug("role middleware: missing medical role",
				slog.String("user_id", actor.UserID),
				slog.String("tenant_id", actor.TenantID))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireMedicalAdminMiddleware rejects callers without the MEDICAL_ADMIN role.
//
// MUST be used after IdentityMiddleware.
func RequireMedicalAdminMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c.Request.Context())
		if !ok {
			logger.Error("role middleware: no actor in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !actor.IsMedicalAdmin() {
			logger.Debug("role middleware: missing admin medical role",
				slog.String("user_id", actor.UserID),
				slog.String("tenant_id", actor.TenantID))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// SecondFactorMiddleware requires a second-factor code on mutating requests.
//
// The code itself is verified upstream; a well-formed header is the contract
// here. Read-only methods pass through untouched.
//
// Error handling:
//   - Mutating request without an X-2FA-Code of at least 6 chars → 428 Precondition Required
func SecondFactorMiddleware(required bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required || isReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		if len(c.GetHeader(HeaderSecondFactor)) < 6 {
			logger.Debug("second factor middleware: missing code",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, apperrors.ErrSecondFactorRequired, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// VaultGateMiddleware blocks access to protected medical data unless the
// caller holds an active access grant for the tenant.
//
// MUST be used after IdentityMiddleware.
//
// Error handling:
//   - No actor in context → 401 Unauthorized
//   - No active grant → 423 Locked
func VaultGateMiddleware(accessUseCase vaultUseCase.AccessUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c.Request.Context())
		if !ok {
			logger.Error("vault gate middleware: no actor in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := accessUseCase.Gate(c.Request.Context(), actor.TenantID, actor.UserID); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
