package registry

import (
	"context"
	"fmt"

	"github.com/basehub-labs/basehub/pkg/core"
)

// User is an active BaseHub identity. Guests are keyed by their originating
// network address; authenticated users by an account identifier.
//
// Field mutation happens under the registry's user lock; a *User obtained
// from FindUser must be treated as read-only by callers.
type User struct {
	ID       string `json:"id"`
	IsLogged bool   `json:"is_logged"`
}

// Logout flips the user to the logged-out state.
func (u *User) Logout() {
	u.IsLogged = false
}

// SaveConfig persists a connection config for this user through the remote
// config store collaborator.
func (u *User) SaveConfig(ctx context.Context, store core.ConfigStore, cfg core.ConnectionConfig) error {
	if store == nil {
		return fmt.Errorf("no config store configured")
	}
	if err := store.SaveConnectionConfig(ctx, u.ID, cfg); err != nil {
		return fmt.Errorf("failed to save config for user %s: %w", u.ID, err)
	}
	return nil
}
