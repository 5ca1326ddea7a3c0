package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
	apperrors "github.com/pitchside/medvault/internal/errors"
)

// auditLogUseCase implements AuditLogUseCase.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	logger       *slog.Logger
}

// Record persists one audit entry for an attempt against a protected resource.
// Generates a UUIDv7 identifier and UTC timestamp. The write runs on a context
// detached from cancellation so a caller that disconnects mid-request still
// gets its attempt logged. Persistence failures are logged at Warn and
// swallowed.
func (a *auditLogUseCase) Record(ctx context.Context, input *RecordInput) {
	auditLog := &auditDomain.AuditLog{
		ID:            uuid.Must(uuid.NewV7()),
		TenantID:      input.TenantID,
		UserID:        input.UserID,
		RequestID:     input.RequestID,
		ResourceType:  input.ResourceType,
		ResourceID:    input.ResourceID,
		Action:        input.Action,
		Reason:        input.Reason,
		LawfulBasis:   input.LawfulBasis,
		IPAddress:     input.IPAddress,
		WasSuccessful: input.WasSuccessful,
		ErrorMessage:  input.ErrorMessage,
		CreatedAt:     time.Now().UTC(),
	}

	if err := a.auditLogRepo.Create(context.WithoutCancel(ctx), auditLog); err != nil {
		a.logger.Warn("failed to record audit log",
			slog.String("tenant_id", input.TenantID),
			slog.String("resource_type", input.ResourceType),
			slog.String("action", input.Action),
			slog.String("error", err.Error()),
		)
	}
}

// List retrieves a tenant's audit logs ordered by created_at descending with
// pagination and optional inclusive time boundaries.
func (a *auditLogUseCase) List(
	ctx context.Context,
	tenantID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.List(ctx, tenantID, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}

	return auditLogs, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository, logger *slog.Logger) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		logger:       logger,
	}
}
