// Package domain defines the entities of the per-tenant medical vault: the
// vault row holding the wrapped tenant data key and passphrase gate, and the
// time-boxed access grants issued on unlock.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DataKeySize is the required tenant data key length in bytes (256 bits).
const DataKeySize = 32

// Vault is the per-tenant encrypted-key container plus its passphrase gate.
//
// Exactly one vault exists per tenant (unique constraint on TenantID). The
// wrapped data key and the passphrase hash are deliberately independent:
// the passphrase gates access, the data key controls decryption capability.
// Resetting a forgotten passphrase therefore never requires re-encrypting
// tenant data.
type Vault struct {
	ID uuid.UUID
	// TenantID identifies the owning tenant. Unique.
	TenantID string
	// WrappedDataKey is the tenant data key wrapped with the master key,
	// stored as a versioned blob string. Never persisted unwrapped.
	WrappedDataKey string
	// PassphraseHash is the Argon2id hash of "passphrase:salt". Set to a
	// throwaway random value at creation so it is never empty before an
	// admin chooses a real passphrase.
	PassphraseHash string
	PassphraseSalt string
	// Hint is an optional operator-chosen reminder, shown on the unlock form.
	Hint      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessGrant is a time-boxed record proving a user has unlocked a tenant's vault.
//
// Grants are never updated except to set RevokedAt; expiry is enforced by
// wall-clock comparison at gate time, so a stale grant row can only shorten
// an effective session, never extend it past ExpiresAt.
type AccessGrant struct {
	ID       uuid.UUID
	TenantID string
	UserID   string
	// Reason is the caller-supplied justification, mandatory at unlock and
	// carried into the audit trail.
	Reason    string
	GrantedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the grant authorizes access at the given instant.
func (g *AccessGrant) Active(now time.Time) bool {
	return g.RevokedAt == nil && now.Before(g.ExpiresAt)
}
