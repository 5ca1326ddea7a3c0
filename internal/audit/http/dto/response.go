// Package dto contains response objects for audit log endpoints.
package dto

import (
	"time"

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
)

// AuditLogResponse represents a single audit entry.
type AuditLogResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	UserID        string    `json:"user_id"`
	RequestID     string    `json:"request_id,omitempty"`
	ResourceType  string    `json:"resource_type"`
	ResourceID    string    `json:"resource_id"`
	Action        string    `json:"action"`
	Reason        string    `json:"reason,omitempty"`
	LawfulBasis   string    `json:"lawful_basis"`
	IPAddress     string    `json:"ip_address,omitempty"`
	WasSuccessful bool      `json:"was_successful"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListAuditLogsResponse wraps a page of audit entries.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
}

// MapAuditLogToResponse converts a domain AuditLog to its response form.
func MapAuditLogToResponse(auditLog *auditDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:            auditLog.ID.String(),
		TenantID:      auditLog.TenantID,
		UserID:        auditLog.UserID,
		RequestID:     auditLog.RequestID,
		ResourceType:  auditLog.ResourceType,
		ResourceID:    auditLog.ResourceID,
		Action:        auditLog.Action,
		Reason:        auditLog.Reason,
		LawfulBasis:   auditLog.LawfulBasis,
		IPAddress:     auditLog.IPAddress,
		WasSuccessful: auditLog.WasSuccessful,
		ErrorMessage:  auditLog.ErrorMessage,
		CreatedAt:     auditLog.CreatedAt,
	}
}

// MapAuditLogsToListResponse converts a slice of audit logs to a list response.
func MapAuditLogsToListResponse(auditLogs []*auditDomain.AuditLog) ListAuditLogsResponse {
	responses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		responses = append(responses, MapAuditLogToResponse(auditLog))
	}
	return ListAuditLogsResponse{AuditLogs: responses}
}
