package app

import (
	"fmt"

	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
	cryptoService "github.com/pitchside/medvault/internal/crypto/service"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
	vaultRepository "github.com/pitchside/medvault/internal/vault/repository"
	vaultService "github.com/pitchside/medvault/internal/vault/service"
	vaultUseCase "github.com/pitchside/medvault/internal/vault/usecase"
)

// MasterKey returns the master key loaded from configuration.
// Loading fails when the key is missing or malformed; callers treat that as fatal.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = cryptoDomain.LoadMasterKey(c.config.MasterKey)
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// BlobCipher returns the blob cipher configured with the wrap algorithm.
func (c *Container) BlobCipher() (cryptoService.BlobCipher, error) {
	var err error
	c.blobCipherInit.Do(func() {
		c.blobCipher, err = c.initBlobCipher()
		if err != nil {
			c.initErrors["blobCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blobCipher"]; exists {
		return nil, storedErr
	}
	return c.blobCipher, nil
}

// PassphraseService returns the passphrase hashing service.
func (c *Container) PassphraseService() vaultService.PassphraseService {
	c.passphraseServiceInit.Do(func() {
		c.passphraseService = vaultService.NewPassphraseService()
	})
	return c.passphraseService
}

// VaultRepository returns the vault repository based on database driver.
func (c *Container) VaultRepository() (vaultUseCase.VaultRepository, error) {
	var err error
	c.vaultRepoInit.Do(func() {
		c.vaultRepo, err = c.initVaultRepository()
		if err != nil {
			c.initErrors["vaultRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultRepo"]; exists {
		return nil, storedErr
	}
	return c.vaultRepo, nil
}

// GrantRepository returns the access grant repository based on database driver.
func (c *Container) GrantRepository() (vaultUseCase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// KeyManagerUseCase returns the vault key manager use case.
func (c *Container) KeyManagerUseCase() (vaultUseCase.KeyManagerUseCase, error) {
	var err error
	c.keyManagerUseCaseInit.Do(func() {
		c.keyManagerUseCase, err = c.initKeyManagerUseCase()
		if err != nil {
			c.initErrors["keyManagerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyManagerUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyManagerUseCase, nil
}

// AccessUseCase returns the vault access use case.
func (c *Container) AccessUseCase() (vaultUseCase.AccessUseCase, error) {
	var err error
	c.accessUseCaseInit.Do(func() {
		c.accessUseCase, err = c.initAccessUseCase()
		if err != nil {
			c.initErrors["accessUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessUseCase"]; exists {
		return nil, storedErr
	}
	return c.accessUseCase, nil
}

// VaultHandler returns the HTTP handler for vault lifecycle operations.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	var err error
	c.vaultHandlerInit.Do(func() {
		c.vaultHandler, err = c.initVaultHandler()
		if err != nil {
			c.initErrors["vaultHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vaultHandler, nil
}

// initBlobCipher creates the blob cipher from the configured algorithm.
func (c *Container) initBlobCipher() (cryptoService.BlobCipher, error) {
	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.VaultAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vault algorithm: %w", err)
	}

	aeadManager := cryptoService.NewAEADManager()
	return cryptoService.NewBlobCipher(aeadManager, algorithm), nil
}

// initVaultRepository creates the vault repository based on the database driver.
func (c *Container) initVaultRepository() (vaultUseCase.VaultRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for vault repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return vaultRepository.NewPostgreSQLVaultRepository(db), nil
	case "mysql":
		return vaultRepository.NewMySQLVaultRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGrantRepository creates the access grant repository based on the database driver.
func (c *Container) initGrantRepository() (vaultUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return vaultRepository.NewPostgreSQLGrantRepository(db), nil
	case "mysql":
		return vaultRepository.NewMySQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyManagerUseCase creates the key manager use case with all its dependencies.
func (c *Container) initKeyManagerUseCase() (vaultUseCase.KeyManagerUseCase, error) {
	vaultRepo, err := c.VaultRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault repository for key manager use case: %w", err)
	}

	blobCipher, err := c.BlobCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob cipher for key manager use case: %w", err)
	}

	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for key manager use case: %w", err)
	}

	baseUseCase := vaultUseCase.NewKeyManagerUseCase(
		vaultRepo,
		blobCipher,
		c.PassphraseService(),
		masterKey,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for key manager use case: %w", err)
		}
		return vaultUseCase.NewKeyManagerUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAccessUseCase creates the access use case with all its dependencies.
func (c *Container) initAccessUseCase() (vaultUseCase.AccessUseCase, error) {
	keyManager, err := c.KeyManagerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key manager use case for access use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for access use case: %w", err)
	}

	baseUseCase := vaultUseCase.NewAccessUseCase(
		keyManager,
		grantRepo,
		c.config.VaultSessionTTL,
		c.config.VaultDisabledTenants,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access use case: %w", err)
		}
		return vaultUseCase.NewAccessUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initVaultHandler creates the vault HTTP handler with all its dependencies.
func (c *Container) initVaultHandler() (*vaultHTTP.VaultHandler, error) {
	keyManager, err := c.KeyManagerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key manager use case for vault handler: %w", err)
	}

	access, err := c.AccessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for vault handler: %w", err)
	}

	return vaultHTTP.NewVaultHandler(keyManager, access, c.Logger()), nil
}
