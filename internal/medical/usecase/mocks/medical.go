// Package mocks provides mock implementations for testing medical use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
	medicalUseCase "github.com/pitchside/medvault/internal/medical/usecase"
)

// MockCaseRepository is a mock implementation of CaseRepository for testing.
type MockCaseRepository struct {
	mock.Mock
}

// Create mocks the Create method of CaseRepository.
func (m *MockCaseRepository) Create(ctx context.Context, medicalCase *medicalDomain.Case) error {
	args := m.Called(ctx, medicalCase)
	return args.Error(0)
}

// GetByID mocks the GetByID method of CaseRepository.
func (m *MockCaseRepository) GetByID(
	ctx context.Context,
	tenantID string,
	caseID uuid.UUID,
) (*medicalDomain.Case, error) {
	args := m.Called(ctx, tenantID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalDomain.Case), args.Error(1)
}

// List mocks the List method of CaseRepository.
func (m *MockCaseRepository) List(
	ctx context.Context,
	tenantID string,
	limit, offset int,
) ([]*medicalDomain.Case, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medicalDomain.Case), args.Error(1)
}

// MockGDPRRequestRepository is a mock implementation of GDPRRequestRepository for testing.
type MockGDPRRequestRepository struct {
	mock.Mock
}

// Create mocks the Create method of GDPRRequestRepository.
func (m *MockGDPRRequestRepository) Create(
	ctx context.Context,
	request *medicalDomain.GDPRRequest,
) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// MockMedicalUseCase is a mock implementation of MedicalUseCase for testing.
type MockMedicalUseCase struct {
	mock.Mock
}

// CreateCase mocks the CreateCase method of MedicalUseCase.
func (m *MockMedicalUseCase) CreateCase(
	ctx context.Context,
	input *medicalUseCase.CreateCaseInput,
) (*medicalDomain.Case, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalDomain.Case), args.Error(1)
}

// GetCase mocks the GetCase method of MedicalUseCase.
func (m *MockMedicalUseCase) GetCase(
	ctx context.Context,
	tenantID string,
	caseID uuid.UUID,
) (*medicalDomain.Case, error) {
	args := m.Called(ctx, tenantID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalDomain.Case), args.Error(1)
}

// ListCases mocks the ListCases method of MedicalUseCase.
func (m *MockMedicalUseCase) ListCases(
	ctx context.Context,
	tenantID string,
	limit, offset int,
) ([]*medicalDomain.Case, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medicalDomain.Case), args.Error(1)
}

// CreateGDPRRequest mocks the CreateGDPRRequest method of MedicalUseCase.
func (m *MockMedicalUseCase) CreateGDPRRequest(
	ctx context.Context,
	input *medicalUseCase.CreateGDPRRequestInput,
) (*medicalDomain.GDPRRequest, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalDomain.GDPRRequest), args.Error(1)
}
