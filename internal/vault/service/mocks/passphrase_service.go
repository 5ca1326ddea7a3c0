// Package mocks provides mock implementations for testing vault services.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPassphraseService is a mock implementation of PassphraseService for testing.
type MockPassphraseService struct {
	mock.Mock
}

// GenerateSalt mocks the GenerateSalt method of PassphraseService.
func (m *MockPassphraseService) GenerateSalt() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// Hash mocks the Hash method of PassphraseService.
func (m *MockPassphraseService) Hash(passphrase, salt string) (string, error) {
	args := m.Called(passphrase, salt)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method of PassphraseService.
func (m *MockPassphraseService) Verify(passphrase, salt, hash string) bool {
	args := m.Called(passphrase, salt, hash)
	return args.Bool(0)
}
