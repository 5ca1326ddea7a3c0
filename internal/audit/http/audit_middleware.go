// Package http provides the audit trail middleware and HTTP handlers.
package http

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	auditUseCase "github.com/pitchside/medvault/internal/audit/usecase"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
)

// Gin context keys handlers can set to enrich the audit entry for the
// current request.
const (
	// ResourceIDKey carries the id of the resource the request acted on.
	// Handlers set it once the id is known (e.g. after creating a case).
	ResourceIDKey = "audit_resource_id"

	// ReasonKey carries the caller-supplied access reason, when the
	// operation collects one.
	ReasonKey = "audit_reason"
)

// placeholder resource id for create operations that were rejected before
// an id existed.
const newResourceID = "(new)"

// AuditMiddleware records exactly one audit entry per request, after the
// rest of the chain has run. It must sit directly after the identity
// middleware so that rejections by role, gate, or second-factor checks are
// still captured: the entry's outcome is derived from the final response
// status. Recording is best-effort and never fails the request.
func AuditMiddleware(
	auditLogUseCase auditUseCase.AuditLogUseCase,
	resourceType, action, lawfulBasis string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		input := &auditUseCase.RecordInput{
			RequestID:    requestid.Get(c),
			ResourceType: resourceType,
			ResourceID:   resolveResourceID(c),
			Action:       action,
			Reason:       c.GetString(ReasonKey),
			LawfulBasis:  lawfulBasis,
			IPAddress:    c.ClientIP(),
		}

		if actor, ok := vaultHTTP.GetActor(c.Request.Context()); ok {
			input.TenantID = actor.TenantID
			input.UserID = actor.UserID
		}

		status := c.Writer.Status()
		input.WasSuccessful = status < http.StatusBadRequest
		if !input.WasSuccessful {
			input.ErrorMessage = http.StatusText(status)
		}

		auditLogUseCase.Record(c.Request.Context(), input)
	}
}

func resolveResourceID(c *gin.Context) string {
	if resourceID := c.GetString(ResourceIDKey); resourceID != "" {
		return resourceID
	}
	if resourceID := c.Param("id"); resourceID != "" {
		return resourceID
	}
	return newResourceID
}
