// Package registry owns BaseHub's process-wide directory of active users and
// their live connections. One Registry instance is created at startup and
// injected into every request-handling context; its maps are guarded for
// concurrent use, and each connection is additionally serialized through its
// SharedConnection handle.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/basehub-labs/basehub/internal/auth"
	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

// ErrUserNotFound is returned when an operation requires a user that is not
// in the active-users map.
var ErrUserNotFound = errors.New("user not found")

// Registry is the top-level stateful component: it creates, indexes, and
// hands out connections per user, and keeps the minimal user/session
// bookkeeping needed to scope a connection to its owner.
//
// The users and connections maps are keyed by the same identity space (user
// id) but guarded by separate locks; no operation needs both at once except
// logout, which takes them one after the other.
type Registry struct {
	usersMu sync.RWMutex
	users   map[string]*User

	connsMu sync.RWMutex
	conns   map[string]*SharedConnection

	minter *auth.Minter
	store  core.ConfigStore
	logger *slog.Logger
}

// New creates a Registry. The minter is required for guest sessions; the
// store backs remote config persistence. If logger is nil, a discard logger
// is used.
func New(minter *auth.Minter, store core.ConfigStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		users:  make(map[string]*User),
		conns:  make(map[string]*SharedConnection),
		minter: minter,
		store:  store,
		logger: logger,
	}
}

// CreateConnection creates a thread-safe connection handle for the source
// described by cfg. Dispatch is purely on the config's source type: an
// unregistered variant fails with *driver.UnsupportedSourceError rather than
// silently succeeding. The handle is not indexed; call AddConnection to
// associate it with a user.
//
// A nil handle with a nil error is reserved for future source kinds that
// need no connection; no current driver produces it.
func (r *Registry) CreateConnection(ctx context.Context, cfg core.ConnectionConfig) (*SharedConnection, error) {
	drv, err := driver.New(cfg, r.logger, r.store)
	if err != nil {
		return nil, err
	}

	if err := drv.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Source, err)
	}

	r.logger.Info("connection established",
		"source", cfg.Source.String(), "conn_id", drv.ID())

	return NewSharedConnection(drv), nil
}

// GetConnection returns a user's active connection handle, if any. Absence
// is a normal outcome (a not-yet-connected user), not an error.
func (r *Registry) GetConnection(userID string) (*SharedConnection, bool) {
	r.connsMu.RLock()
	defer r.connsMu.RUnlock()
	conn, ok := r.conns[userID]
	return conn, ok
}

// AddConnection indexes a connection handle under a user id. If the user
// already had a connection, the prior handle is closed before it is replaced
// so backend resources are not leaked.
func (r *Registry) AddConnection(userID string, conn *SharedConnection) {
	r.connsMu.Lock()
	defer r.connsMu.Unlock()

	if prev, ok := r.conns[userID]; ok {
		if err := prev.Close(); err != nil {
			r.logger.Warn("failed to close replaced connection",
				"user_id", userID, "conn_id", prev.ID(), "error", err)
		}
	}
	r.conns[userID] = conn
}

// CreateGuestUser mints a session bound to the request origin and registers
// a guest user under that origin. It fails only if session minting fails.
func (r *Registry) CreateGuestUser(origin string) (*auth.Session, error) {
	session, err := r.minter.Mint(origin)
	if err != nil {
		return nil, fmt.Errorf("failed to mint guest session: %w", err)
	}

	r.usersMu.Lock()
	r.users[origin] = &User{ID: origin, IsLogged: false}
	r.usersMu.Unlock()

	r.logger.Info("guest user created", "user_id", origin)
	return session, nil
}

// FindUser returns an active user by id. Absence is a normal outcome.
func (r *Registry) FindUser(userID string) (*User, bool) {
	r.usersMu.RLock()
	defer r.usersMu.RUnlock()
	user, ok := r.users[userID]
	return user, ok
}

// LogUserOut marks the user logged out and removes it from the active-users
// map, closing and dropping any connection it owned so the two maps stay
// consistent. Logging out an unknown id is a no-op.
func (r *Registry) LogUserOut(userID string) {
	r.usersMu.Lock()
	if user, ok := r.users[userID]; ok {
		user.Logout()
		delete(r.users, userID)
		r.logger.Info("user logged out", "user_id", userID)
	}
	r.usersMu.Unlock()

	r.connsMu.Lock()
	if conn, ok := r.conns[userID]; ok {
		if err := conn.Close(); err != nil {
			r.logger.Warn("failed to close connection on logout",
				"user_id", userID, "conn_id", conn.ID(), "error", err)
		}
		delete(r.conns, userID)
	}
	r.connsMu.Unlock()
}

// SaveConfig persists a connection config for a user through the remote
// config store. It returns ErrUserNotFound if the user was never established
// rather than treating the condition as fatal.
func (r *Registry) SaveConfig(ctx context.Context, cfg core.ConnectionConfig, userID string) error {
	user, ok := r.FindUser(userID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return user.SaveConfig(ctx, r.store, cfg)
}
