// Package repository implements data persistence for consent records.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses CHAR(36).
package repository

import (
	"context"
	"database/sql"
	"time"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
)

// PostgreSQLConsentRepository implements Consent persistence for PostgreSQL.
type PostgreSQLConsentRepository struct {
	db *sql.DB
}

// Create inserts a new consent record.
func (p *PostgreSQLConsentRepository) Create(ctx context.Context, consent *consentDomain.Consent) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO consents (id, tenant_id, subject_id, consent_type, lawful_basis, status, consent_form_text, granted_by, granted_at, expires_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		consent.ID,
		consent.TenantID,
		consent.SubjectID,
		consent.ConsentType,
		consent.LawfulBasis,
		consent.Status,
		consent.ConsentFormText,
		consent.GrantedBy,
		consent.GrantedAt,
		consent.ExpiresAt,
		consent.CreatedAt,
		consent.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create consent")
	}
	return nil
}

// HasActive reports whether a granted, unexpired consent of the given type
// exists for (tenant, subject) at the given instant.
func (p *PostgreSQLConsentRepository) HasActive(
	ctx context.Context,
	tenantID, subjectID, consentType string,
	now time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM consents
				WHERE tenant_id = $1 AND subject_id = $2 AND consent_type = $3
				  AND status = $4 AND (expires_at IS NULL OR expires_at > $5)
			  )`

	var active bool
	err := querier.QueryRowContext(
		ctx, query,
		tenantID, subjectID, consentType, consentDomain.StatusGranted, now,
	).Scan(&active)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check active consent")
	}

	return active, nil
}

// NewPostgreSQLConsentRepository creates a new PostgreSQL Consent repository.
func NewPostgreSQLConsentRepository(db *sql.DB) *PostgreSQLConsentRepository {
	return &PostgreSQLConsentRepository{db: db}
}
