package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
)

// MySQLAuditLogRepository implements AuditLog persistence for MySQL.
// UUIDs are stored as CHAR(36).
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new audit log entry.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, auditLog *auditDomain.AuditLog) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO audit_logs (id, tenant_id, user_id, request_id, resource_type, resource_id, action, reason, lawful_basis, ip_address, was_successful, error_message, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		auditLog.ID.String(),
		auditLog.TenantID,
		auditLog.UserID,
		auditLog.RequestID,
		auditLog.ResourceType,
		auditLog.ResourceID,
		auditLog.Action,
		auditLog.Reason,
		auditLog.LawfulBasis,
		auditLog.IPAddress,
		auditLog.WasSuccessful,
		auditLog.ErrorMessage,
		auditLog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List retrieves a tenant's audit logs ordered by created_at descending
// (newest first) with pagination and optional time-based filtering.
// createdAtFrom and createdAtTo are inclusive boundaries; nil means no
// filter. Returns an empty slice when nothing matches.
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	tenantID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditLog, error) {
	querier := database.GetTx(ctx, m.db)

	conditions := []string{"tenant_id = ?"}
	args := []interface{}{tenantID}

	if createdAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *createdAtFrom)
	}

	if createdAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *createdAtTo)
	}

	query := `SELECT id, tenant_id, user_id, request_id, resource_type, resource_id, action, reason, lawful_basis, ip_address, was_successful, error_message, created_at
			  FROM audit_logs
			  WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`

	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	auditLogs := make([]*auditDomain.AuditLog, 0)
	for rows.Next() {
		var auditLog auditDomain.AuditLog
		var id string

		err := rows.Scan(
			&id,
			&auditLog.TenantID,
			&auditLog.UserID,
			&auditLog.RequestID,
			&auditLog.ResourceType,
			&auditLog.ResourceID,
			&auditLog.Action,
			&auditLog.Reason,
			&auditLog.LawfulBasis,
			&auditLog.IPAddress,
			&auditLog.WasSuccessful,
			&auditLog.ErrorMessage,
			&auditLog.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		if err := auditLog.ID.UnmarshalText([]byte(id)); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit log id")
		}

		auditLogs = append(auditLogs, &auditLog)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return auditLogs, nil
}

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
