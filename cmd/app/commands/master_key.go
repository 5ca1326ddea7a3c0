// Package commands contains CLI command implementations for the application.
package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// and prints it as an environment variable assignment. The key material is
// zeroed from memory after encoding.
func RunCreateMasterKey(w io.Writer) error {
	masterKey := make([]byte, cryptoDomain.MasterKeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(masterKey)
	cryptoDomain.Zero(masterKey)

	fmt.Fprintln(w, "# Master key configuration")
	fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager.")
	fmt.Fprintln(w, "# Anyone holding this value can unwrap every tenant data key: treat it")
	fmt.Fprintln(w, "# like a production credential and never commit it to version control.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "MEDVAULT_MASTER_KEY=%q\n", encoded)

	return nil
}
