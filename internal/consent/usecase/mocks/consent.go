// Package mocks provides mock implementations for testing consent use cases.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	consentUseCase "github.com/pitchside/medvault/internal/consent/usecase"
)

// MockConsentRepository is a mock implementation of ConsentRepository for testing.
type MockConsentRepository struct {
	mock.Mock
}

// Create mocks the Create method of ConsentRepository.
func (m *MockConsentRepository) Create(ctx context.Context, consent *consentDomain.Consent) error {
	args := m.Called(ctx, consent)
	return args.Error(0)
}

// HasActive mocks the HasActive method of ConsentRepository.
func (m *MockConsentRepository) HasActive(
	ctx context.Context,
	tenantID, subjectID, consentType string,
	now time.Time,
) (bool, error) {
	args := m.Called(ctx, tenantID, subjectID, consentType, now)
	return args.Bool(0), args.Error(1)
}

// MockConsentUseCase is a mock implementation of ConsentUseCase for testing.
type MockConsentUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ConsentUseCase.
func (m *MockConsentUseCase) Create(
	ctx context.Context,
	input *consentUseCase.CreateConsentInput,
) (*consentDomain.Consent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consentDomain.Consent), args.Error(1)
}

// RequireActive mocks the RequireActive method of ConsentUseCase.
func (m *MockConsentUseCase) RequireActive(
	ctx context.Context,
	tenantID, subjectID, consentType string,
) error {
	args := m.Called(ctx, tenantID, subjectID, consentType)
	return args.Error(0)
}
