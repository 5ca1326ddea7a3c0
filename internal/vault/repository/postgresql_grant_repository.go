package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// PostgreSQLGrantRepository implements AccessGrant persistence for PostgreSQL.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// Create inserts a new AccessGrant. Prior grants for the pair are left
// untouched; multiple grants may coexist.
func (p *PostgreSQLGrantRepository) Create(
	ctx context.Context,
	grant *vaultDomain.AccessGrant,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO access_grants (id, tenant_id, user_id, reason, granted_at, expires_at, revoked_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID,
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
// unexpired at the given instant. Expiry is a wall-clock comparison here, so
// a stale row can never extend a session past its ExpiresAt.
func (p *PostgreSQLGrantRepository) HasActive(
	ctx context.Context,
	tenantID, userID string,
	now time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM access_grants
				WHERE tenant_id = $1 AND user_id = $2 AND revoked_at IS NULL AND expires_at > $3
			  )`

	var active bool
	err := querier.QueryRowContext(ctx, query, tenantID, userID, now).Scan(&active)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check active grants")
	}

	return active, nil
}

// RevokeAll marks every non-revoked grant for (tenant, user) as revoked at
// the given instant. Idempotent: revoking zero grants is a success.
func (p *PostgreSQLGrantRepository) RevokeAll(
	ctx context.Context,
	tenantID, userID string,
	now time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE access_grants
			  SET revoked_at = $1
			  WHERE tenant_id = $2 AND user_id = $3 AND revoked_at IS NULL`

	_, err := querier.ExecContext(ctx, query, now, tenantID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke access grants")
	}
	return nil
}

// NewPostgreSQLGrantRepository creates a new PostgreSQL AccessGrant repository.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}
