package driver

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/basehub-labs/basehub/pkg/core"
)

// BaseSQLDriver provides common database/sql plumbing for drivers. Embed it
// in concrete implementations to get standard Close, identity, and
// table-config bookkeeping.
//
// A BaseSQLDriver is not internally synchronized: callers are expected to
// reach it through a shared handle that serializes access (the registry's
// SharedConnection does this).
type BaseSQLDriver struct {
	DB     *sql.DB
	Cfg    core.ConnectionConfig
	Logger *slog.Logger
	Store  core.ConfigStore

	connID string
	local  map[string]core.TableConfig
}

// Bind attaches an open database handle and records the connection identity.
// Concrete drivers call it at the end of a successful Connect.
func (b *BaseSQLDriver) Bind(db *sql.DB, cfg core.ConnectionConfig) {
	b.DB = db
	b.Cfg = cfg
	b.connID = uuid.NewString()
	b.local = make(map[string]core.TableConfig)
}

// ID returns the connection identity assigned at Connect time.
func (b *BaseSQLDriver) ID() string {
	return b.connID
}

// Close closes the database connection.
func (b *BaseSQLDriver) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection", "conn_id", b.connID)
		}
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLDriver) IsConnected() bool {
	return b.DB != nil
}

// StoreTableConfig persists a table config either in driver-local memory or
// through the remote config store. Concrete drivers call it from
// SaveTableConfig after validating that the table exists.
func (b *BaseSQLDriver) StoreTableConfig(ctx context.Context, table string, cfg core.TableConfig, saveLocal bool) error {
	if saveLocal {
		if b.local == nil {
			b.local = make(map[string]core.TableConfig)
		}
		b.local[table] = cfg
		return nil
	}
	if b.Store == nil {
		return ErrNoConfigStore
	}
	return b.Store.SaveTableConfig(ctx, b.connID, table, cfg)
}

// LocalTableConfig returns the locally saved config for a table, if any.
func (b *BaseSQLDriver) LocalTableConfig(table string) (core.TableConfig, bool) {
	cfg, ok := b.local[table]
	return cfg, ok
}

// ConfiguredTables returns the names of tables with a locally saved config
// (sorted), for inclusion in ConnectionDetails.
func (b *BaseSQLDriver) ConfiguredTables() []string {
	if len(b.local) == 0 {
		return nil
	}
	names := make([]string, 0, len(b.local))
	for name := range b.local {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
