package usecase

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
	cryptoService "github.com/pitchside/medvault/internal/crypto/service"
	apperrors "github.com/pitchside/medvault/internal/errors"
	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
	serviceMocks "github.com/pitchside/medvault/internal/vault/service/mocks"
	usecaseMocks "github.com/pitchside/medvault/internal/vault/usecase/mocks"
)

func testMasterKey(t *testing.T) *cryptoDomain.MasterKey {
	t.Helper()

	material := bytes.Repeat([]byte{0x42}, 32)
	masterKey, err := cryptoDomain.NewMasterKey(material)
	require.NoError(t, err)
	t.Cleanup(masterKey.Close)

	return masterKey
}

func testBlobCipher() cryptoService.BlobCipher {
	return cryptoService.NewBlobCipher(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
}

func newTestKeyManager(
	t *testing.T,
	vaultRepo VaultRepository,
	passphrases *serviceMocks.MockPassphraseService,
) KeyManagerUseCase {
	t.Helper()
	return NewKeyManagerUseCase(vaultRepo, testBlobCipher(), passphrases, testMasterKey(t))
}

func TestKeyManagerUseCase_EnsureVault(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsExistingVault", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)
		existing := &vaultDomain.Vault{
			ID:       uuid.Must(uuid.NewV7()),
			TenantID: "tenant-1",
		}

		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(existing, nil).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		vault, err := useCase.EnsureVault(ctx, "tenant-1")

		require.NoError(t, err)
		assert.Equal(t, existing, vault)
		mockVaultRepo.AssertExpectations(t)
	})

	t.Run("CreatesVaultOnFirstUse", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)

		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(nil, apperrors.ErrNotFound).Once()
		mockPassphrases.On("GenerateSalt").Return("salt", nil).Once()
		mockPassphrases.On("Hash", mock.AnythingOfType("string"), "salt").Return("hash", nil).Once()
		mockVaultRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vault")).Return(nil).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		vault, err := useCase.EnsureVault(ctx, "tenant-1")

		require.NoError(t, err)
		assert.Equal(t, "tenant-1", vault.TenantID)
		assert.NotEmpty(t, vault.WrappedDataKey)
		assert.Equal(t, "hash", vault.PassphraseHash)
		assert.Equal(t, "salt", vault.PassphraseSalt)
		mockVaultRepo.AssertExpectations(t)
		mockPassphrases.AssertExpectations(t)
	})

	t.Run("RereadsOnInsertRace", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)
		winner := &vaultDomain.Vault{
			ID:       uuid.Must(uuid.NewV7()),
			TenantID: "tenant-1",
		}

		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(nil, apperrors.ErrNotFound).Once()
		mockPassphrases.On("GenerateSalt").Return("salt", nil).Once()
		mockPassphrases.On("Hash", mock.AnythingOfType("string"), "salt").Return("hash", nil).Once()
		mockVaultRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vault")).
			Return(apperrors.ErrConflict).Once()
		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(winner, nil).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		vault, err := useCase.EnsureVault(ctx, "tenant-1")

		require.NoError(t, err)
		assert.Equal(t, winner, vault)
		mockVaultRepo.AssertExpectations(t)
	})

	t.Run("ConcurrentCallersShareOneCreation", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)

		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(nil, apperrors.ErrNotFound).Once()
		mockPassphrases.On("GenerateSalt").Return("salt", nil).Once()
		mockPassphrases.On("Hash", mock.AnythingOfType("string"), "salt").Return("hash", nil).Once()

		release := make(chan struct{})
		mockVaultRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vault")).
			Run(func(args mock.Arguments) { <-release }).
			Return(nil).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)

		var wg sync.WaitGroup
		results := make([]*vaultDomain.Vault, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				vault, err := useCase.EnsureVault(ctx, "tenant-1")
				assert.NoError(t, err)
				results[i] = vault
			}(i)
		}

		// Let both goroutines pile onto the in-flight creation.
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Same(t, results[0], results[1])
		mockVaultRepo.AssertExpectations(t)
	})
}

func TestKeyManagerUseCase_TeamDataKey(t *testing.T) {
	ctx := context.Background()

	t.Run("UnwrapsStoredKey", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)
		masterKey := testMasterKey(t)
		blobCipher := testBlobCipher()

		dataKey := bytes.Repeat([]byte{0x07}, vaultDomain.DataKeySize)
		wrapped, err := blobCipher.Wrap(masterKey.Bytes(), dataKey)
		require.NoError(t, err)

		vault := &vaultDomain.Vault{TenantID: "tenant-1", WrappedDataKey: wrapped}
		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(vault, nil).Once()

		useCase := NewKeyManagerUseCase(mockVaultRepo, blobCipher, mockPassphrases, masterKey)
		got, err := useCase.TeamDataKey(ctx, "tenant-1")

		require.NoError(t, err)
		assert.Equal(t, dataKey, got)
		cryptoDomain.Zero(got)
	})

	t.Run("TamperedBlobIsKeyCorruption", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)

		vault := &vaultDomain.Vault{
			TenantID:       "tenant-1",
			WrappedDataKey: "v1:aes-gcm:bm9uY2U=:Y2lwaGVydGV4dA==",
		}
		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(vault, nil).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		_, err := useCase.TeamDataKey(ctx, "tenant-1")

		assert.ErrorIs(t, err, cryptoDomain.ErrKeyCorruption)
	})

	t.Run("WrongLengthKeyIsKeyCorruption", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)
		masterKey := testMasterKey(t)
		blobCipher := testBlobCipher()

		wrapped, err := blobCipher.Wrap(masterKey.Bytes(), []byte("short-key"))
		require.NoError(t, err)

		vault := &vaultDomain.Vault{TenantID: "tenant-1", WrappedDataKey: wrapped}
		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(vault, nil).Once()

		useCase := NewKeyManagerUseCase(mockVaultRepo, blobCipher, mockPassphrases, masterKey)
		_, err = useCase.TeamDataKey(ctx, "tenant-1")

		assert.ErrorIs(t, err, cryptoDomain.ErrKeyCorruption)
	})
}

func TestKeyManagerUseCase_SetPassphrase(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)
		existing := &vaultDomain.Vault{TenantID: "tenant-1"}

		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(existing, nil).Once()
		mockPassphrases.On("GenerateSalt").Return("new-salt", nil).Once()
		mockPassphrases.On("Hash", "a strong passphrase", "new-salt").Return("new-hash", nil).Once()
		mockVaultRepo.On("UpdatePassphrase", ctx, "tenant-1", "new-hash", "new-salt", "club motto").
			Return(nil).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		err := useCase.SetPassphrase(ctx, "tenant-1", "a strong passphrase", "club motto")

		assert.NoError(t, err)
		mockVaultRepo.AssertExpectations(t)
		mockPassphrases.AssertExpectations(t)
	})

	t.Run("RejectsShortPassphrase", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		err := useCase.SetPassphrase(ctx, "tenant-1", "too-short", "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockVaultRepo.AssertNotCalled(t, "UpdatePassphrase", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestKeyManagerUseCase_VerifyPassphrase(t *testing.T) {
	ctx := context.Background()

	t.Run("MatchingPassphrase", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)
		vault := &vaultDomain.Vault{
			TenantID:       "tenant-1",
			PassphraseHash: "stored-hash",
			PassphraseSalt: "stored-salt",
		}

		mockVaultRepo.On("GetByTenant", ctx, "tenant-1").Return(vault, nil).Once()
		mockPassphrases.On("Verify", "open sesame please", "stored-salt", "stored-hash").
			Return(true).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		ok, err := useCase.VerifyPassphrase(ctx, "tenant-1", "open sesame please")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("UnknownTenantVerifiesFalse", func(t *testing.T) {
		mockVaultRepo := new(usecaseMocks.MockVaultRepository)
		mockPassphrases := new(serviceMocks.MockPassphraseService)

		mockVaultRepo.On("GetByTenant", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

		useCase := newTestKeyManager(t, mockVaultRepo, mockPassphrases)
		ok, err := useCase.VerifyPassphrase(ctx, "missing", "anything at all")

		require.NoError(t, err)
		assert.False(t, ok)
		mockPassphrases.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})
}
