package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// MySQLGrantRepository implements AccessGrant persistence for MySQL.
type MySQLGrantRepository struct {
	db *sql.DB
}

// Create inserts a new AccessGrant.
func (m *MySQLGrantRepository) Create(
	ctx context.Context,
	grant *vaultDomain.AccessGrant,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO access_grants (id, tenant_id, user_id, reason, granted_at, expires_at, revoked_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID.String(),
		grant.TenantID,
		grant.UserID,
		grant.Reason,
		grant.GrantedAt,
		grant.ExpiresAt,
		grant.RevokedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create access grant")
	}
	return nil
}

// HasActive reports whether any grant for (tenant, user) is unrevoked and
// unexpired at the given instant.
func (m *MySQLGrantRepository) HasActive(
	ctx context.Context,
	tenantID, userID string,
	now time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM access_grants
				WHERE tenant_id = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?
			  )`

	var active bool
	err := querier.QueryRowContext(ctx, query, tenantID, userID, now).Scan(&active)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check active grants")
	}

	return active, nil
}

// RevokeAll marks every non-revoked grant for (tenant, user) as revoked at
// the given instant. Idempotent.
func (m *MySQLGrantRepository) RevokeAll(
	ctx context.Context,
	tenantID, userID string,
	now time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE access_grants
			  SET revoked_at = ?
			  WHERE tenant_id = ? AND user_id = ? AND revoked_at IS NULL`

	_, err := querier.ExecContext(ctx, query, now, tenantID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke access grants")
	}
	return nil
}

// NewMySQLGrantRepository creates a new MySQL AccessGrant repository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}
