package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// MockKeyManagerUseCase is a mock implementation of KeyManagerUseCase for testing.
type MockKeyManagerUseCase struct {
	mock.Mock
}

// EnsureVault mocks the EnsureVault method of KeyManagerUseCase.
func (m *MockKeyManagerUseCase) EnsureVault(ctx context.Context, tenantID string) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

// TeamDataKey mocks the TeamDataKey method of KeyManagerUseCase.
func (m *MockKeyManagerUseCase) TeamDataKey(ctx context.Context, tenantID string) ([]byte, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// SetPassphrase mocks the SetPassphrase method of KeyManagerUseCase.
func (m *MockKeyManagerUseCase) SetPassphrase(ctx context.Context, tenantID, passphrase, hint string) error {
	args := m.Called(ctx, tenantID, passphrase, hint)
	return args.Error(0)
}

// VerifyPassphrase mocks the VerifyPassphrase method of KeyManagerUseCase.
func (m *MockKeyManagerUseCase) VerifyPassphrase(ctx context.Context, tenantID, passphrase string) (bool, error) {
	args := m.Called(ctx, tenantID, passphrase)
	return args.Bool(0), args.Error(1)
}

// MockAccessUseCase is a mock implementation of AccessUseCase for testing.
type MockAccessUseCase struct {
	mock.Mock
}

// Unlock mocks the Unlock method of AccessUseCase.
func (m *MockAccessUseCase) Unlock(
	ctx context.Context,
	tenantID, userID, passphrase, reason string,
) (*vaultDomain.AccessGrant, error) {
	args := m.Called(ctx, tenantID, userID, passphrase, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.AccessGrant), args.Error(1)
}

// Lock mocks the Lock method of AccessUseCase.
func (m *MockAccessUseCase) Lock(ctx context.Context, tenantID, userID string) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

// Gate mocks the Gate method of AccessUseCase.
func (m *MockAccessUseCase) Gate(ctx context.Context, tenantID, userID string) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}
