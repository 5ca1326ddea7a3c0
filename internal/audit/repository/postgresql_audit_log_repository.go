// Package repository implements data persistence for audit logs.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). The table is append-only; neither implementation exposes
// update or delete operations.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
)

// PostgreSQLAuditLogRepository implements AuditLog persistence for PostgreSQL.
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new audit log entry.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, auditLog *auditDomain.AuditLog) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO audit_logs (id, tenant_id, user_id, request_id, resource_type, resource_id, action, reason, lawful_basis, ip_address, was_successful, error_message, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		auditLog.ID,
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
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	tenantID string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditLog, error) {
	querier := database.GetTx(ctx, p.db)

	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}

	if createdAtFrom != nil {
		args = append(args, *createdAtFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if createdAtTo != nil {
		args = append(args, *createdAtTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT id, tenant_id, user_id, request_id, resource_type, resource_id, action, reason, lawful_basis, ip_address, was_successful, error_message, created_at
			  FROM audit_logs
			  WHERE ` + strings.Join(conditions, " AND ")

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

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

		err := rows.Scan(
			&auditLog.ID,
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

		auditLogs = append(auditLogs, &auditLog)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return auditLogs, nil
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL AuditLog repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}
