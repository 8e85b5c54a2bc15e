// Package common defines shared constants and sentinel errors used across
// the CivicWatch client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUserMismatch     = errors.New("operation target does not match authenticated user")
	ErrAdminRequired    = errors.New("administrator privileges required")

	// Credential store errors.
	ErrNoCredentials = errors.New("no stored credentials")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
