package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	consentUseCase "github.com/pitchside/medvault/internal/consent/usecase"
	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
	cryptoService "github.com/pitchside/medvault/internal/crypto/service"
	"github.com/pitchside/medvault/internal/database"
	apperrors "github.com/pitchside/medvault/internal/errors"
	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
	vaultUseCase "github.com/pitchside/medvault/internal/vault/usecase"
)

// medicalUseCase implements the MedicalUseCase interface.
type medicalUseCase struct {
	txManager  database.TxManager
	caseRepo   CaseRepository
	gdprRepo   GDPRRequestRepository
	consents   consentUseCase.ConsentUseCase
	keyManager vaultUseCase.KeyManagerUseCase
	blobCipher cryptoService.BlobCipher
	severity   *medicalDomain.SeverityMapper
}

// CreateCase runs the protected case-creation flow. Order matters: the
// consent gate fails before any key material is derived or any row written.
// The wrap step is pure, so a caller can retry from the original plaintext
// if persistence fails; nothing here auto-retries.
func (u *medicalUseCase) CreateCase(
	ctx context.Context,
	input *CreateCaseInput,
) (*medicalDomain.Case, error) {
	if input.SubjectID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "subject is required")
	}
	if input.Type == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "case type is required")
	}

	err := u.consents.RequireActive(ctx, input.TenantID, input.SubjectID, consentDomain.TypeTreatment)
	if err != nil {
		return nil, err
	}

	dataKey, err := u.keyManager.TeamDataKey(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(dataKey)

	details := input.Details
	if details == nil {
		details = map[string]any{}
	}
	plaintext, err := json.Marshal(details)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode case details")
	}

	encrypted, err := u.blobCipher.Wrap(dataKey, plaintext)
	if err != nil {
		return nil, err
	}

	caseNumber, err := medicalDomain.NewCaseNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	medicalCase := &medicalDomain.Case{
		ID:               uuid.Must(uuid.NewV7()),
		TenantID:         input.TenantID,
		SubjectID:        input.SubjectID,
		CaseNumber:       caseNumber,
		Type:             input.Type,
		Status:           medicalDomain.CaseStatusOpen,
		OnsetDate:        input.OnsetDate,
		IsAvailable:      input.IsAvailable,
		EncryptedPayload: encrypted,
		KeyVersion:       medicalDomain.DataKeyVersion(input.TenantID),
		BodyAreaHash:     medicalDomain.HashBodyArea(input.BodyArea),
		SeverityBucket:   u.severity.Bucket(input.Severity),
		CreatedBy:        input.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.caseRepo.Create(txCtx, medicalCase)
	})
	if err != nil {
		return nil, err
	}

	return medicalCase, nil
}

// GetCase returns case metadata within a tenant.
func (u *medicalUseCase) GetCase(
	ctx context.Context,
	tenantID string,
	caseID uuid.UUID,
) (*medicalDomain.Case, error) {
	return u.caseRepo.GetByID(ctx, tenantID, caseID)
}

// defaultPageSize bounds unpaginated list requests.
const defaultPageSize = 50

// maxPageSize bounds client-supplied page sizes.
const maxPageSize = 200

// ListCases returns paginated case metadata for a tenant.
func (u *medicalUseCase) ListCases(
	ctx context.Context,
	tenantID string,
	limit, offset int,
) ([]*medicalDomain.Case, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return u.caseRepo.List(ctx, tenantID, limit, offset)
}

// CreateGDPRRequest records a data-subject rights request.
func (u *medicalUseCase) CreateGDPRRequest(
	ctx context.Context,
	input *CreateGDPRRequestInput,
) (*medicalDomain.GDPRRequest, error) {
	if input.SubjectID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "subject is required")
	}
	if !validGDPRType(input.Type) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown gdpr request type")
	}

	now := time.Now().UTC()
	request := &medicalDomain.GDPRRequest{
		ID:        uuid.Must(uuid.NewV7()),
		TenantID:  input.TenantID,
		SubjectID: input.SubjectID,
		Type:      input.Type,
		Status:    medicalDomain.GDPRRequestStatusReceived,
		Details:   input.Details,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.gdprRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func validGDPRType(requestType string) bool {
	switch requestType {
	case medicalDomain.GDPRTypeAccess,
		medicalDomain.GDPRTypeErasure,
		medicalDomain.GDPRTypePortability,
		medicalDomain.GDPRTypeRectification:
		return true
	}
	return false
}

// NewMedicalUseCase creates a new MedicalUseCase instance.
func NewMedicalUseCase(
	txManager database.TxManager,
	caseRepo CaseRepository,
	gdprRepo GDPRRequestRepository,
	consents consentUseCase.ConsentUseCase,
	keyManager vaultUseCase.KeyManagerUseCase,
	blobCipher cryptoService.BlobCipher,
	severity *medicalDomain.SeverityMapper,
) MedicalUseCase {
	return &medicalUseCase{
		txManager:  txManager,
		caseRepo:   caseRepo,
		gdprRepo:   gdprRepo,
		consents:   consents,
		keyManager: keyManager,
		blobCipher: blobCipher,
		severity:   severity,
	}
}
