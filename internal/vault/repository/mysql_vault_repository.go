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

// MySQLVaultRepository implements Vault persistence for MySQL.
type MySQLVaultRepository struct {
	db *sql.DB
}

// Create inserts a new Vault. A duplicate tenant_id surfaces as ErrConflict.
func (m *MySQLVaultRepository) Create(ctx context.Context, vault *vaultDomain.Vault) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vaults (id, tenant_id, wrapped_data_key, passphrase_hash, passphrase_salt, hint, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		vault.ID.String(),
		vault.TenantID,
		vault.WrappedDataKey,
		vault.PassphraseHash,
		vault.PassphraseSalt,
		vault.Hint,
		vault.CreatedAt,
		vault.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "vault already exists for tenant")
		}
		return apperrors.Wrap(err, "failed to create vault")
	}
	return nil
}

// GetByTenant retrieves the vault for a tenant. Returns ErrNotFound if absent.
func (m *MySQLVaultRepository) GetByTenant(
	ctx context.Context,
	tenantID string,
) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, tenant_id, wrapped_data_key, passphrase_hash, passphrase_salt, hint, created_at, updated_at
			  FROM vaults
			  WHERE tenant_id = ?`

	var vault vaultDomain.Vault
	var id string
	err := querier.QueryRowContext(ctx, query, tenantID).Scan(
		&id,
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

	if err := vault.ID.UnmarshalText([]byte(id)); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse vault id")
	}

	return &vault, nil
}

// UpdatePassphrase replaces the passphrase hash, salt, and hint for a tenant's
// vault without touching the wrapped data key.
func (m *MySQLVaultRepository) UpdatePassphrase(
	ctx context.Context,
	tenantID, hash, salt, hint string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vaults
			  SET passphrase_hash = ?,
			      passphrase_salt = ?,
			      hint = ?,
			      updated_at = ?
			  WHERE tenant_id = ?`

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

// NewMySQLVaultRepository creates a new MySQL Vault repository.
func NewMySQLVaultRepository(db *sql.DB) *MySQLVaultRepository {
	return &MySQLVaultRepository{db: db}
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
