package repository

import (
	"context"
	"database/sql"

	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
)

// MySQLGDPRRequestRepository implements GDPRRequest persistence for MySQL.
type MySQLGDPRRequestRepository struct {
	db *sql.DB
}

// Create inserts a new GDPR request record.
func (m *MySQLGDPRRequestRepository) Create(
	ctx context.Context,
	request *medicalDomain.GDPRRequest,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO gdpr_requests (id, tenant_id, subject_id, type, status, details, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		request.ID.String(),
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

// NewMySQLGDPRRequestRepository creates a new MySQL GDPRRequest repository.
func NewMySQLGDPRRequestRepository(db *sql.DB) *MySQLGDPRRequestRepository {
	return &MySQLGDPRRequestRepository{db: db}
}
