package repository

import (
	"context"
	"database/sql"
	"time"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
)

// MySQLConsentRepository implements Consent persistence for MySQL.
type MySQLConsentRepository struct {
	db *sql.DB
}

// Create inserts a new consent record.
func (m *MySQLConsentRepository) Create(ctx context.Context, consent *consentDomain.Consent) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO consents (id, tenant_id, subject_id, consent_type, lawful_basis, status, consent_form_text, granted_by, granted_at, expires_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		consent.ID.String(),
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
func (m *MySQLConsentRepository) HasActive(
	ctx context.Context,
	tenantID, subjectID, consentType string,
	now time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM consents
				WHERE tenant_id = ? AND subject_id = ? AND consent_type = ?
				  AND status = ? AND (expires_at IS NULL OR expires_at > ?)
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

// NewMySQLConsentRepository creates a new MySQL Consent repository.
func NewMySQLConsentRepository(db *sql.DB) *MySQLConsentRepository {
	return &MySQLConsentRepository{db: db}
}
