package repository

import (
	"context"
	"database/sql"

	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
)

// PostgreSQLGDPRRequestRepository implements GDPRRequest persistence for PostgreSQL.
type PostgreSQLGDPRRequestRepository struct {
	db *sql.DB
}

// Create inserts a new GDPR request record.
func (p *PostgreSQLGDPRRequestRepository) Create(
	ctx context.Context,
	request *medicalDomain.GDPRRequest,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO gdpr_requests (id, tenant_id, subject_id, type, status, details, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		request.ID,
		request.TenantID,
		request.SubjectID,
		request.Type,
		request.Status,
		request.Details,
		request.CreatedBy,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create gdpr request")
	}
	return nil
}

// NewPostgreSQLGDPRRequestRepository creates a new PostgreSQL GDPRRequest repository.
func NewPostgreSQLGDPRRequestRepository(db *sql.DB) *PostgreSQLGDPRRequestRepository {
	return &PostgreSQLGDPRRequestRepository{db: db}
}
