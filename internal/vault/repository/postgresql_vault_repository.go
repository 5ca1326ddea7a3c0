// Package repository implements data persistence for vault entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses CHAR(36).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// PostgreSQLVaultRepository implements Vault persistence for PostgreSQL.
type PostgreSQLVaultRepository struct {
	db *sql.DB
}

// Create inserts a new Vault. The unique constraint on tenant_id is the
// correctness backstop against concurrent first-time creation: a duplicate
// insert surfaces as ErrConflict so the caller can re-read the winner's row.
func (p *PostgreSQLVaultRepository) Create(ctx context.Context, vault *vaultDomain.Vault) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vaults (id, tenant_id, wrapped_data_key, passphrase_hash, passphrase_salt, hint, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		vault.ID,
		vault.TenantID,
		vault.WrappedDataKey,
		vault.PassphraseHash,
		vault.PassphraseSalt,
		vault.Hint,
		vault.CreatedAt,
		vault.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "vault already exists for tenant")
		}
		return apperrors.Wrap(err, "failed to create vault")
	}
	return nil
}

// GetByTenant retrieves the vault for a tenant. Returns ErrNotFound if absent.
func (p *PostgreSQLVaultRepository) GetByTenant(
	ctx context.Context,
	tenantID string,
) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, tenant_id, wrapped_data_key, passphrase_hash, passphrase_salt, hint, created_at, updated_at
			  FROM vaults
			  WHERE tenant_id = $1`

	var vault vaultDomain.Vault
	err := querier.QueryRowContext(ctx, query, tenantID).Scan(
		&vault.ID,
		&vault.TenantID,
		&vault.WrappedDataKey,
		&vault.PassphraseHash,
		&vault.PassphraseSalt,
		&vault.Hint,
		&vault.CreatedAt,
		&vault.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by tenant")
	}

	return &vault, nil
}

// UpdatePassphrase replaces the passphrase hash, salt, and hint for a tenant's
// vault. The wrapped data key is deliberately untouched: passphrase changes
// never require re-encrypting tenant data.
func (p *PostgreSQLVaultRepository) UpdatePassphrase(
	ctx context.Context,
	tenantID, hash, salt, hint string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vaults
			  SET passphrase_hash = $1,
			      passphrase_salt = $2,
			      hint = $3,
			      updated_at = $4
			  WHERE tenant_id = $5`

	result, err := querier.ExecContext(ctx, query, hash, salt, hint, time.Now().UTC(), tenantID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update vault passphrase")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// NewPostgreSQLVaultRepository creates a new PostgreSQL Vault repository.
func NewPostgreSQLVaultRepository(db *sql.DB) *PostgreSQLVaultRepository {
	return &PostgreSQLVaultRepository{db: db}
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
