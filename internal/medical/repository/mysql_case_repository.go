package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
)

// MySQLCaseRepository implements Case persistence for MySQL.
type MySQLCaseRepository struct {
	db *sql.DB
}

// Create inserts a new medical case. A duplicate case number surfaces as
// ErrConflict so the caller can regenerate and retry.
func (m *MySQLCaseRepository) Create(ctx context.Context, medicalCase *medicalDomain.Case) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO medical_cases (id, tenant_id, subject_id, case_number, type, status, onset_date, is_available, encrypted_payload, key_version, body_area_hash, severity_bucket, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		medicalCase.ID.String(),
		medicalCase.TenantID,
		medicalCase.SubjectID,
		medicalCase.CaseNumber,
		medicalCase.Type,
		medicalCase.Status,
		medicalCase.OnsetDate,
		medicalCase.IsAvailable,
		medicalCase.EncryptedPayload,
		medicalCase.KeyVersion,
		medicalCase.BodyAreaHash,
		medicalCase.SeverityBucket,
		medicalCase.CreatedBy,
		medicalCase.CreatedAt,
		medicalCase.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "case number already exists")
		}
		return apperrors.Wrap(err, "failed to create medical case")
	}
	return nil
}

// GetByID retrieves case metadata by id within a tenant.
// Returns ErrNotFound if absent.
func (m *MySQLCaseRepository) GetByID(
	ctx context.Context,
	tenantID string,
	caseID uuid.UUID,
) (*medicalDomain.Case, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + caseMetadataColumns + `
			  FROM medical_cases
			  WHERE id = ? AND tenant_id = ?`

	var medicalCase medicalDomain.Case
	var id string
	err := querier.QueryRowContext(ctx, query, caseID.String(), tenantID).Scan(
		&id,
		&medicalCase.TenantID,
		&medicalCase.SubjectID,
		&medicalCase.CaseNumber,
		&medicalCase.Type,
		&medicalCase.Status,
		&medicalCase.OnsetDate,
		&medicalCase.IsAvailable,
		&medicalCase.BodyAreaHash,
		&medicalCase.SeverityBucket,
		&medicalCase.CreatedBy,
		&medicalCase.CreatedAt,
		&medicalCase.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get medical case")
	}
	if err := medicalCase.ID.UnmarshalText([]byte(id)); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse medical case id")
	}

	return &medicalCase, nil
}

// List retrieves case metadata for a tenant, newest first.
func (m *MySQLCaseRepository) List(
	ctx context.Context,
	tenantID string,
	limit, offset int,
) ([]*medicalDomain.Case, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + caseMetadataColumns + `
			  FROM medical_cases
			  WHERE tenant_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list medical cases")
	}
	defer rows.Close()

	var cases []*medicalDomain.Case
	for rows.Next() {
		var medicalCase medicalDomain.Case
		var id string
		err := rows.Scan(
			&id,
			&medicalCase.TenantID,
			&medicalCase.SubjectID,
			&medicalCase.CaseNumber,
			&medicalCase.Type,
			&medicalCase.Status,
			&medicalCase.OnsetDate,
			&medicalCase.IsAvailable,
			&medicalCase.BodyAreaHash,
			&medicalCase.SeverityBucket,
			&medicalCase.CreatedBy,
			&medicalCase.CreatedAt,
			&medicalCase.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan medical case")
		}
		if err := medicalCase.ID.UnmarshalText([]byte(id)); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse medical case id")
		}
		cases = append(cases, &medicalCase)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate medical cases")
	}

	return cases, nil
}

// NewMySQLCaseRepository creates a new MySQL Case repository.
func NewMySQLCaseRepository(db *sql.DB) *MySQLCaseRepository {
	return &MySQLCaseRepository{db: db}
}

// isMySQLUniqueViolation detects unique constraint violations without
// importing driver error types.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "1062")
}
