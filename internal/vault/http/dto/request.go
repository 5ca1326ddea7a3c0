// Package dto provides data transfer objects for vault HTTP request and
// response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/pitchside/medvault/internal/validation"
)

// EnableVaultRequest contains the parameters for enabling vault protection
// on the caller's tenant.
type EnableVaultRequest struct {
	Passphrase string `json:"passphrase"`
	Hint       string `json:"hint"`
}

// Validate checks if the enable vault request is valid.
func (r *EnableVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase,
			validation.Required,
			customValidation.PassphraseLength,
		),
		validation.Field(&r.Hint,
			validation.Length(0, 255),
		),
	)
}

// UnlockVaultRequest contains the parameters for unlocking the vault.
// Both fields are mandatory: the reason lands in the audit trail.
type UnlockVaultRequest struct {
	Passphrase string `json:"passphrase"`
	Reason     string `json:"reason"`
}

// Validate checks if the unlock vault request is valid.
func (r *UnlockVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase,
			validation.Required,
		),
		validation.Field(&r.Reason,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 500),
		),
	)
}
