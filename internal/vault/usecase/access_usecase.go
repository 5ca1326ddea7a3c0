package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/pitchside/medvault/internal/errors"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// accessUseCase implements the AccessUseCase interface.
type accessUseCase struct {
	keyManager      KeyManagerUseCase
	grantRepo       GrantRepository
	sessionTTL      time.Duration
	disabledTenants map[string]struct{}
}

// Unlock verifies the passphrase and issues a time-boxed access grant.
// Both passphrase and reason are mandatory: the reason becomes part of the
// grant and the audit trail.
func (a *accessUseCase) Unlock(
	ctx context.Context,
	tenantID, userID, passphrase, reason string,
) (*vaultDomain.AccessGrant, error) {
	if passphrase == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "passphrase is required")
	}
	if reason == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "reason is required")
	}

	ok, err := a.keyManager.VerifyPassphrase(ctx, tenantID, passphrase)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Deliberately indistinguishable from an unknown tenant.
		return nil, apperrors.ErrUnauthorized
	}

	now := time.Now().UTC()
	grant := &vaultDomain.AccessGrant{
		ID:        uuid.Must(uuid.NewV7()),
		TenantID:  tenantID,
		UserID:    userID,
		Reason:    reason,
		GrantedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}

	if err := a.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}

	return grant, nil
}

// Lock revokes every active grant the user holds for the tenant.
func (a *accessUseCase) Lock(ctx context.Context, tenantID, userID string) error {
	return a.grantRepo.RevokeAll(ctx, tenantID, userID, time.Now().UTC())
}

// Gate returns nil when the user may read protected data for the tenant.
// Tenants on the disabled list bypass the gate entirely.
func (a *accessUseCase) Gate(ctx context.Context, tenantID, userID string) error {
	if _, bypass := a.disabledTenants[tenantID]; bypass {
		return nil
	}

	active, err := a.grantRepo.HasActive(ctx, tenantID, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !active {
		return apperrors.ErrVaultLocked
	}

	return nil
}

// NewAccessUseCase creates a new AccessUseCase instance.
func NewAccessUseCase(
	keyManager KeyManagerUseCase,
	grantRepo GrantRepository,
	sessionTTL time.Duration,
	disabledTenants []string,
) AccessUseCase {
	disabled := make(map[string]struct{}, len(disabledTenants))
	for _, tenant := range disabledTenants {
		disabled[tenant] = struct{}{}
	}

	return &accessUseCase{
		keyManager:      keyManager,
		grantRepo:       grantRepo,
		sessionTTL:      sessionTTL,
		disabledTenants: disabled,
	}
}
