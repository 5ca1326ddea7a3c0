package app

import (
	"fmt"

	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
	medicalHTTP "github.com/pitchside/medvault/internal/medical/http"
	medicalRepository "github.com/pitchside/medvault/internal/medical/repository"
	medicalUseCase "github.com/pitchside/medvault/internal/medical/usecase"
)

// CaseRepository returns the medical case repository based on database driver.
func (c *Container) CaseRepository() (medicalUseCase.CaseRepository, error) {
	var err error
	c.caseRepoInit.Do(func() {
		c.caseRepo, err = c.initCaseRepository()
		if err != nil {
			c.initErrors["caseRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["caseRepo"]; exists {
		return nil, storedErr
	}
	return c.caseRepo, nil
}

// GDPRRequestRepository returns the GDPR request repository based on database driver.
func (c *Container) GDPRRequestRepository() (medicalUseCase.GDPRRequestRepository, error) {
	var err error
	c.gdprRepoInit.Do(func() {
		c.gdprRepo, err = c.initGDPRRequestRepository()
		if err != nil {
			c.initErrors["gdprRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gdprRepo"]; exists {
		return nil, storedErr
	}
	return c.gdprRepo, nil
}

// MedicalUseCase returns the medical records use case.
func (c *Container) MedicalUseCase() (medicalUseCase.MedicalUseCase, error) {
	var err error
	c.medicalUseCaseInit.Do(func() {
		c.medicalUseCase, err = c.initMedicalUseCase()
		if err != nil {
			c.initErrors["medicalUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["medicalUseCase"]; exists {
		return nil, storedErr
	}
	return c.medicalUseCase, nil
}

// CaseHandler returns the HTTP handler for medical case operations.
func (c *Container) CaseHandler() (*medicalHTTP.CaseHandler, error) {
	var err error
	c.caseHandlerInit.Do(func() {
		c.caseHandler, err = c.initCaseHandler()
		if err != nil {
			c.initErrors["caseHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["caseHandler"]; exists {
		return nil, storedErr
	}
	return c.caseHandler, nil
}

// GDPRRequestHandler returns the HTTP handler for GDPR request operations.
func (c *Container) GDPRRequestHandler() (*medicalHTTP.GDPRRequestHandler, error) {
	var err error
	c.gdprRequestHandlerInit.Do(func() {
		c.gdprRequestHandler, err = c.initGDPRRequestHandler()
		if err != nil {
			c.initErrors["gdprRequestHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gdprRequestHandler"]; exists {
		return nil, storedErr
	}
	return c.gdprRequestHandler, nil
}

// initCaseRepository creates the case repository based on the database driver.
func (c *Container) initCaseRepository() (medicalUseCase.CaseRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for case repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return medicalRepository.NewPostgreSQLCaseRepository(db), nil
	case "mysql":
		return medicalRepository.NewMySQLCaseRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGDPRRequestRepository creates the GDPR request repository based on the database driver.
func (c *Container) initGDPRRequestRepository() (medicalUseCase.GDPRRequestRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for gdpr request repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return medicalRepository.NewPostgreSQLGDPRRequestRepository(db), nil
	case "mysql":
		return medicalRepository.NewMySQLGDPRRequestRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMedicalUseCase creates the medical use case with all its dependencies.
func (c *Container) initMedicalUseCase() (medicalUseCase.MedicalUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for medical use case: %w", err)
	}

	caseRepo, err := c.CaseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get case repository for medical use case: %w", err)
	}

	gdprRepo, err := c.GDPRRequestRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get gdpr request repository for medical use case: %w", err)
	}

	consents, err := c.ConsentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get consent use case for medical use case: %w", err)
	}

	keyManager, err := c.KeyManagerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key manager use case for medical use case: %w", err)
	}

	blobCipher, err := c.BlobCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob cipher for medical use case: %w", err)
	}

	severity := medicalDomain.ParseSeverityMapper(c.config.SeverityBuckets)

	return medicalUseCase.NewMedicalUseCase(
		txManager,
		caseRepo,
		gdprRepo,
		consents,
		keyManager,
		blobCipher,
		severity,
	), nil
}

// initCaseHandler creates the case HTTP handler with all its dependencies.
func (c *Container) initCaseHandler() (*medicalHTTP.CaseHandler, error) {
	useCase, err := c.MedicalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get medical use case for case handler: %w", err)
	}

	return medicalHTTP.NewCaseHandler(useCase, c.Logger()), nil
}

// initGDPRRequestHandler creates the GDPR request HTTP handler with all its dependencies.
func (c *Container) initGDPRRequestHandler() (*medicalHTTP.GDPRRequestHandler, error) {
	useCase, err := c.MedicalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get medical use case for gdpr request handler: %w", err)
	}

	return medicalHTTP.NewGDPRRequestHandler(useCase, c.Logger()), nil
}
