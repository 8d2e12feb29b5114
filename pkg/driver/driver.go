// Package driver defines the contract every BaseHub backend driver must
// implement, along with the factory registry that maps source-type variants
// to driver constructors.
//
// Concrete driver implementations live in pkg/drivers/ subdirectories and
// self-register in their init() functions.
package driver

import (
	"context"
	"errors"

	"github.com/basehub-labs/basehub/pkg/core"
)

// Sentinel errors shared by all driver implementations.
var (
	// ErrNotConnected is returned when an operation is invoked before
	// Connect succeeded or after Close.
	ErrNotConnected = errors.New("database connection not established")

	// ErrTableNotFound is returned by SaveTableConfig when the named table
	// does not exist on the connection.
	ErrTableNotFound = errors.New("table does not exist")

	// ErrNoConfigStore is returned when a remote save is requested but no
	// config store collaborator was attached to the driver.
	ErrNoConfigStore = errors.New("no remote config store configured")
)

// Driver is the uniform capability set a backend must provide. The registry
// and transport layers depend only on this interface, never on a concrete
// backend type.
//
// Every operation returns an error rather than panicking: driver failures
// (network loss, auth expiry, malformed config) are expected operational
// events, and callers need to tell a retryable I/O failure from not-found
// from bad config.
type Driver interface {
	// Connect establishes the backend connection described by cfg.
	// It fails if the backend cannot be reached or the config is
	// malformed for this backend.
	Connect(ctx context.Context, cfg core.ConnectionConfig) error

	// Close releases the underlying backend resources.
	Close() error

	// ID returns the stable identity of this connection instance,
	// assigned at Connect time. Used to key remote config-store writes.
	ID() string

	// Details returns backend-identifying metadata. Fails if the
	// underlying connection is no longer valid.
	Details(ctx context.Context) (*core.ConnectionDetails, error)

	// LoadTables enumerates all tables visible to this connection with
	// current counts and timestamps. A source with zero tables yields an
	// empty slice and a nil error.
	LoadTables(ctx context.Context) ([]core.TableSummary, error)

	// TableExists reports whether a table with the given name exists.
	// Case sensitivity and name normalization are backend-defined.
	// It fails only on backend or I/O error, never to signal absence.
	TableExists(ctx context.Context, name string) (bool, error)

	// SaveTableConfig persists a TableConfig for a named table. When
	// saveLocal is true the config is kept in the driver instance's own
	// memory and reflected by subsequent Details calls; otherwise it is
	// forwarded to the remote config store keyed by (connection id,
	// table name). Fails with ErrTableNotFound if the table is absent.
	SaveTableConfig(ctx context.Context, table string, cfg core.TableConfig, saveLocal bool) error
}
