// Package credstore persists the credential snapshot (bearer token plus the
// last-known user profile) across process restarts. The token and user are
// one unit: they are written together and cleared together, never
// independently, so a stale profile can never outlive its token.
package credstore

import (
	"context"

	"github.com/tablebook/tablebook/internal/client/models"
)

// Credentials is the persisted snapshot.
type Credentials struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Store reads and writes the snapshot.
//
// Contract:
//   - Load returns (nil, nil) when no snapshot is stored.
//   - Save persists token and user atomically.
//   - Clear removes the whole snapshot; clearing an empty store succeeds.
type Store interface {
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds *Credentials) error
	Clear(ctx context.Context) error
}
