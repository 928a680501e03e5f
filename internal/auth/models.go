// Package auth owns the credential entity and its verification. Credentials
// are created by the provisioning CLI and read-only from the pipeline's
// perspective.
package auth

import "time"

// Credential is one provisioned API identity: a username and a bcrypt hash.
// The plaintext password never exists outside the verification call.
type Credential struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
