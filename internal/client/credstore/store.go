// Package credstore persists the session secret (user identity plus bearer
// token) between runs. The blob is encrypted at rest with a key derived from
// a local passphrase, so the database file alone is not enough to read it.
package credstore

import (
	"context"

	"github.com/dvelez2005/civicwatch/internal/client/models"
)

// Store is the opaque secure storage abstraction for session secrets.
//
// Contract:
//   - Load: return the stored credentials, or common.ErrNoCredentials when
//     nothing (or something undecryptable) is stored.
//   - Save: replace the stored credentials atomically.
//   - Clear: remove all stored secrets; clearing an empty store is not an
//     error.
type Store interface {
	Load(ctx context.Context) (*models.Credentials, error)
	Save(ctx context.Context, creds *models.Credentials) error
	Clear(ctx context.Context) error
}
