// Package mocks provides mock implementations for testing vault use cases.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/pitchside/medvault/internal/vault/domain"
)

// MockVaultRepository is a mock implementation of VaultRepository for testing.
type MockVaultRepository struct {
	mock.Mock
}

// Create mocks the Create method of VaultRepository.
func (m *MockVaultRepository) Create(ctx context.Context, vault *vaultDomain.Vault) error {
	args := m.Called(ctx, vault)
	return args.Error(0)
}

// GetByTenant mocks the GetByTenant method of VaultRepository.
func (m *MockVaultRepository) GetByTenant(ctx context.Context, tenantID string) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

// UpdatePassphrase mocks the UpdatePassphrase method of VaultRepository.
func (m *MockVaultRepository) UpdatePassphrase(ctx context.Context, tenantID, hash, salt, hint string) error {
	args := m.Called(ctx, tenantID, hash, salt, hint)
	return args.Error(0)
}

// MockGrantRepository is a mock implementation of GrantRepository for testing.
type MockGrantRepository struct {
	mock.Mock
}

// Create mocks the Create method of GrantRepository.
func (m *MockGrantRepository) Create(ctx context.Context, grant *vaultDomain.AccessGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// HasActive mocks the HasActive method of GrantRepository.
func (m *MockGrantRepository) HasActive(
	ctx context.Context,
	tenantID, userID string,
	now time.Time,
) (bool, error) {
	args := m.Called(ctx, tenantID, userID, now)
	return args.Bool(0), args.Error(1)
}

// RevokeAll mocks the RevokeAll method of GrantRepository.
func (m *MockGrantRepository) RevokeAll(
	ctx context.Context,
	tenantID, userID string,
	now time.Time,
) error {
	args := m.Called(ctx, tenantID, userID, now)
	return args.Error(0)
}
