// Package usecase defines the interfaces and implementations for vault
// management use cases. Use cases orchestrate repositories and the crypto
// services to implement tenant data-key provisioning and the passphrase-gated
// access-grant lifecycle.
package usecase

import (
	"context"
	"time"

	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// VaultRepository defines the interface for Vault persistence operations.
type VaultRepository interface {
	Create(ctx context.Context, vault *vaultDomain.Vault) error
	GetByTenant(ctx context.Context, tenantID string) (*vaultDomain.Vault, error)
	UpdatePassphrase(ctx context.Context, tenantID, hash, salt, hint string) error
}

// GrantRepository defines the interface for AccessGrant persistence operations.
type GrantRepository interface {
	Create(ctx context.Context, grant *vaultDomain.AccessGrant) error
	HasActive(ctx context.Context, tenantID, userID string, now time.Time) (bool, error)
	RevokeAll(ctx context.Context, tenantID, userID string, now time.Time) error
}

// KeyManagerUseCase defines the interface for tenant vault and data-key
// management business logic.
type KeyManagerUseCase interface {
	// EnsureVault returns the tenant's vault, creating it with a fresh
	// wrapped data key on first use. Safe for concurrent callers.
	EnsureVault(ctx context.Context, tenantID string) (*vaultDomain.Vault, error)

	// TeamDataKey returns the tenant's plaintext 32-byte data key.
	//
	// Security Note: Callers MUST zero the returned key after use by
	// calling cryptoDomain.Zero(key).
	TeamDataKey(ctx context.Context, tenantID string) ([]byte, error)

	// SetPassphrase sets or replaces the tenant's vault passphrase and hint.
	// The wrapped data key is untouched: changing the passphrase never
	// re-encrypts tenant data.
	SetPassphrase(ctx context.Context, tenantID, passphrase, hint string) error

	// VerifyPassphrase reports whether the passphrase matches the tenant's
	// vault. An unknown tenant verifies as false, not as an error.
	VerifyPassphrase(ctx context.Context, tenantID, passphrase string) (bool, error)
}

// AccessUseCase defines the interface for the vault access-grant lifecycle.
type AccessUseCase interface {
	// Unlock verifies the passphrase and issues a time-boxed access grant.
	Unlock(ctx context.Context, tenantID, userID, passphrase, reason string) (*vaultDomain.AccessGrant, error)

	// Lock revokes every active grant the user holds for the tenant.
	// Locking an already-locked vault is a no-op success.
	Lock(ctx context.Context, tenantID, userID string) error

	// Gate returns nil when the user may read protected data for the
	// tenant, and ErrVaultLocked otherwise.
	Gate(ctx context.Context, tenantID, userID string) error
}
