// Package repository implements data persistence for medical records.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Read queries never select the encrypted payload: the read
// path serves coarse metadata only.
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

// PostgreSQLCaseRepository implements Case persistence for PostgreSQL.
type PostgreSQLCaseRepository struct {
	db *sql.DB
}

// Create inserts a new medical case. A duplicate case number surfaces as
// ErrConflict so the caller can regenerate and retry.
func (p *PostgreSQLCaseRepository) Create(ctx context.Context, medicalCase *medicalDomain.Case) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO medical_cases (id, tenant_id, subject_id, case_number, type, status, onset_date, is_available, encrypted_payload, key_version, body_area_hash, severity_bucket, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := querier.ExecContext(
		ctx,
		query,
		medicalCase.ID,
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
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "case number already exists")
		}
		return apperrors.Wrap(err, "failed to create medical case")
	}
	return nil
}

// caseMetadataColumns are the coarse fields the read path exposes. The
// encrypted payload is deliberately absent.
const caseMetadataColumns = `id, tenant_id, subject_id, case_number, type, status, onset_date, is_available, body_area_hash, severity_bucket, created_by, created_at, updated_at`

// GetByID retrieves case metadata by id within a tenant.
// Returns ErrNotFound if absent.
func (p *PostgreSQLCaseRepository) GetByID(
	ctx context.Context,
	tenantID string,
	caseID uuid.UUID,
) (*medicalDomain.Case, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + caseMetadataColumns + `
			  FROM medical_cases
			  WHERE id = $1 AND tenant_id = $2`

	var medicalCase medicalDomain.Case
	err := querier.QueryRowContext(ctx, query, caseID, tenantID).Scan(
		&medicalCase.ID,
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

	return &medicalCase, nil
}

// List retrieves case metadata for a tenant, newest first.
func (p *PostgreSQLCaseRepository) List(
	ctx context.Context,
	tenantID string,
	limit, offset int,
) ([]*medicalDomain.Case, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + caseMetadataColumns + `
			  FROM medical_cases
			  WHERE tenant_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list medical cases")
	}
	defer rows.Close()

	var cases []*medicalDomain.Case
	for rows.Next() {
		var medicalCase medicalDomain.Case
		err := rows.Scan(
			&medicalCase.ID,
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
		cases = append(cases, &medicalCase)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate medical cases")
	}

	return cases, nil
}

// NewPostgreSQLCaseRepository creates a new PostgreSQL Case repository.
func NewPostgreSQLCaseRepository(db *sql.DB) *PostgreSQLCaseRepository {
	return &PostgreSQLCaseRepository{db: db}
}

// isPostgreSQLUniqueViolation detects unique constraint violations without
// importing driver error types.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
