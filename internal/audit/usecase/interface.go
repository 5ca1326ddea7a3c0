// Package usecase implements business logic for the audit trail.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
)

// AuditLogRepository defines the persistence contract for audit logs.
// The underlying store is append-only.
type AuditLogRepository interface {
	// Create inserts a new audit log entry.
	Create(ctx context.Context, auditLog *auditDomain.AuditLog) error

	// List retrieves a tenant's audit logs ordered by created_at descending
	// with pagination and optional inclusive time boundaries (nil means no
	// filter).
	List(
		ctx context.Context,
		tenantID string,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.AuditLog, error)
}

// RecordInput carries the fields of a single audited attempt.
type RecordInput struct {
	TenantID      string
	UserID        string
	RequestID     string
	ResourceType  string
	ResourceID    string
	Action        string
	Reason        string
	LawfulBasis   string
	IPAddress     string
	WasSuccessful bool
	ErrorMessage  string
}

// AuditLogUseCase records and retrieves audit trail entries.
type AuditLogUseCase interface {
	// Record persists one audit entry for an attempt against a protected
	// resource. Recording is best-effort: persistence failures are logged
	// and swallowed so the audit path never fails a request, and the write
	// survives caller cancellation.
	Record(ctx context.Context, input *RecordInput)

	// List retrieves a tenant's audit logs with pagination and optional
	// time filtering.
	List(
		ctx context.Context,
		tenantID string,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.AuditLog, error)
}
