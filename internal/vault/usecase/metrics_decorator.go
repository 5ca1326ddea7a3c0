package usecase

import (
	"context"
	"time"

	"github.com/pitchside/medvault/internal/metrics"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// accessUseCaseWithMetrics decorates AccessUseCase with metrics instrumentation.
type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Unlock records metrics for vault unlock attempts.
func (a *accessUseCaseWithMetrics) Unlock(
	ctx context.Context,
	tenantID, userID, passphrase, reason string,
) (*vaultDomain.AccessGrant, error) {
	start := time.Now()
	grant, err := a.next.Unlock(ctx, tenantID, userID, passphrase, reason)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "vault", "vault_unlock", status)
	a.metrics.RecordDuration(ctx, "vault", "vault_unlock", time.Since(start), status)

	return grant, err
}

// Lock records metrics for vault lock operations.
func (a *accessUseCaseWithMetrics) Lock(ctx context.Context, tenantID, userID string) error {
	start := time.Now()
	err := a.next.Lock(ctx, tenantID, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "vault", "vault_lock", status)
	a.metrics.RecordDuration(ctx, "vault", "vault_lock", time.Since(start), status)

	return err
}

// Gate records metrics for vault gate checks. Locked-vault rejections count
// as errors, which makes the locked/unlocked ratio visible per tenant fleet.
func (a *accessUseCaseWithMetrics) Gate(ctx context.Context, tenantID, userID string) error {
	start := time.Now()
	err := a.next.Gate(ctx, tenantID, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "vault", "vault_gate", status)
	a.metrics.RecordDuration(ctx, "vault", "vault_gate", time.Since(start), status)

	return err
}

// keyManagerUseCaseWithMetrics decorates KeyManagerUseCase with metrics
// instrumentation.
type keyManagerUseCaseWithMetrics struct {
	next    KeyManagerUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyManagerUseCaseWithMetrics wraps a KeyManagerUseCase with metrics recording.
func NewKeyManagerUseCaseWithMetrics(useCase KeyManagerUseCase, m metrics.BusinessMetrics) KeyManagerUseCase {
	return &keyManagerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// EnsureVault records metrics for vault provisioning operations.
func (k *keyManagerUseCaseWithMetrics) EnsureVault(
	ctx context.Context,
	tenantID string,
) (*vaultDomain.Vault, error) {
	start := time.Now()
	vault, err := k.next.EnsureVault(ctx, tenantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "vault", "vault_ensure", status)
	k.metrics.RecordDuration(ctx, "vault", "vault_ensure", time.Since(start), status)

	return vault, err
}

// TeamDataKey records metrics for data-key unwrap operations. An error status
// here includes key corruption, which deserves an alert.
func (k *keyManagerUseCaseWithMetrics) TeamDataKey(ctx context.Context, tenantID string) ([]byte, error) {
	start := time.Now()
	dataKey, err := k.next.TeamDataKey(ctx, tenantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "vault", "data_key_unwrap", status)
	k.metrics.RecordDuration(ctx, "vault", "data_key_unwrap", time.Since(start), status)

	return dataKey, err
}

// SetPassphrase records metrics for passphrase changes.
func (k *keyManagerUseCaseWithMetrics) SetPassphrase(ctx context.Context, tenantID, passphrase, hint string) error {
	start := time.Now()
	err := k.next.SetPassphrase(ctx, tenantID, passphrase, hint)

	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "vault", "passphrase_set", status)
	k.metrics.RecordDuration(ctx, "vault", "passphrase_set", time.Since(start), status)

	return err
}

// VerifyPassphrase records metrics for passphrase verification. A mismatch is
// not an error status: only infrastructure failures count as errors here.
func (k *keyManagerUseCaseWithMetrics) VerifyPassphrase(
	ctx context.Context,
	tenantID, passphrase string,
) (bool, error) {
	start := time.Now()
	matches, err := k.next.VerifyPassphrase(ctx, tenantID, passphrase)

	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "vault", "passphrase_verify", status)
	k.metrics.RecordDuration(ctx, "vault", "passphrase_verify", time.Since(start), status)

	return matches, err
}
