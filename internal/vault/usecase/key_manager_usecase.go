package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
	cryptoService "github.com/pitchside/medvault/internal/crypto/service"
	apperrors "github.com/pitchside/medvault/internal/errors"
	"github.com/pitchside/medvault/internal/validation"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
	vaultService "github.com/pitchside/medvault/internal/vault/service"
)

// keyManagerUseCase implements the KeyManagerUseCase interface.
type keyManagerUseCase struct {
	vaultRepo   VaultRepository
	blobCipher  cryptoService.BlobCipher
	passphrases vaultService.PassphraseService
	masterKey   *cryptoDomain.MasterKey
	ensureGroup singleflight.Group
}

// EnsureVault returns the tenant's vault, creating it with a fresh wrapped
// data key on first use. Concurrent callers for the same tenant are collapsed
// into a single creation via singleflight; a racing insert from another
// process is resolved by re-reading on conflict.
func (k *keyManagerUseCase) EnsureVault(ctx context.Context, tenantID string) (*vaultDomain.Vault, error) {
	result, err, _ := k.ensureGroup.Do(tenantID, func() (any, error) {
		return k.ensureVault(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*vaultDomain.Vault), nil
}

func (k *keyManagerUseCase) ensureVault(ctx context.Context, tenantID string) (*vaultDomain.Vault, error) {
	vault, err := k.vaultRepo.GetByTenant(ctx, tenantID)
	if err == nil {
		return vault, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	dataKey := make([]byte, vaultDomain.DataKeySize)
	if _, err := rand.Read(dataKey); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate data key")
	}
	defer cryptoDomain.Zero(dataKey)

	wrapped, err := k.blobCipher.Wrap(k.masterKey.Bytes(), dataKey)
	if err != nil {
		return nil, err
	}

	// New vaults start locked behind an unguessable placeholder passphrase
	// until the tenant enables a real one.
	placeholder := make([]byte, 32)
	if _, err := rand.Read(placeholder); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate placeholder passphrase")
	}

	salt, err := k.passphrases.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := k.passphrases.Hash(base64.StdEncoding.EncodeToString(placeholder), salt)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vault = &vaultDomain.Vault{
		ID:             uuid.Must(uuid.NewV7()),
		TenantID:       tenantID,
		WrappedDataKey: wrapped,
		PassphraseHash: hash,
		PassphraseSalt: salt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := k.vaultRepo.Create(ctx, vault); err != nil {
		// Another process won the insert race; its vault is the real one.
		if apperrors.Is(err, apperrors.ErrConflict) {
			return k.vaultRepo.GetByTenant(ctx, tenantID)
		}
		return nil, err
	}

	return vault, nil
}

// TeamDataKey returns the tenant's plaintext data key, provisioning the vault
// first if the tenant has never stored anything.
func (k *keyManagerUseCase) TeamDataKey(ctx context.Context, tenantID string) ([]byte, error) {
	vault, err := k.EnsureVault(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	dataKey, err := k.blobCipher.Unwrap(k.masterKey.Bytes(), vault.WrappedDataKey)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyCorruption, err.Error())
	}
	if len(dataKey) != vaultDomain.DataKeySize {
		cryptoDomain.Zero(dataKey)
		return nil, cryptoDomain.ErrKeyCorruption
	}

	return dataKey, nil
}

// SetPassphrase sets or replaces the tenant's vault passphrase and hint.
func (k *keyManagerUseCase) SetPassphrase(ctx context.Context, tenantID, passphrase, hint string) error {
	if len(passphrase) < validation.MinPassphraseLength {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "passphrase is too short")
	}

	if _, err := k.EnsureVault(ctx, tenantID); err != nil {
		return err
	}

	salt, err := k.passphrases.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := k.passphrases.Hash(passphrase, salt)
	if err != nil {
		return err
	}

	return k.vaultRepo.UpdatePassphrase(ctx, tenantID, hash, salt, hint)
}

// VerifyPassphrase reports whether the passphrase matches the tenant's vault.
func (k *keyManagerUseCase) VerifyPassphrase(ctx context.Context, tenantID, passphrase string) (bool, error) {
	vault, err := k.vaultRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return k.passphrases.Verify(passphrase, vault.PassphraseSalt, vault.PassphraseHash), nil
}

// NewKeyManagerUseCase creates a new KeyManagerUseCase instance.
func NewKeyManagerUseCase(
	vaultRepo VaultRepository,
	blobCipher cryptoService.BlobCipher,
	passphrases vaultService.PassphraseService,
	masterKey *cryptoDomain.MasterKey,
) KeyManagerUseCase {
	return &keyManagerUseCase{
		vaultRepo:   vaultRepo,
		blobCipher:  blobCipher,
		passphrases: passphrases,
		masterKey:   masterKey,
	}
}
