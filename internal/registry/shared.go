package registry

import (
	"context"
	"sync"

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

// SharedConnection wraps exactly one driver instance for safe use by
// concurrent callers. Every operation takes the handle's mutex for its
// duration and releases it on return, error or not, so two requests against
// the same connection serialize while different connections proceed in
// parallel.
//
// There is no read/write distinction: table-config saves mutate driver-local
// state and even loads may refresh backend cursors, so access is always
// fully exclusive. The raw driver is never exposed unsynchronized.
type SharedConnection struct {
	mu  sync.Mutex
	drv driver.Driver
}

// NewSharedConnection wraps a connected driver in a shared handle.
func NewSharedConnection(drv driver.Driver) *SharedConnection {
	return &SharedConnection{drv: drv}
}

// ID returns the wrapped connection's identity. The id is fixed at connect
// time, so no lock is needed.
func (s *SharedConnection) ID() string {
	return s.drv.ID()
}

// Details returns backend-identifying metadata.
func (s *SharedConnection) Details(ctx context.Context) (*core.ConnectionDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.Details(ctx)
}

// LoadTables enumerates the tables visible to the connection.
func (s *SharedConnection) LoadTables(ctx context.Context) ([]core.TableSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.LoadTables(ctx)
}

// TableExists reports whether the named table exists.
func (s *SharedConnection) TableExists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.TableExists(ctx, name)
}

// SaveTableConfig persists a table config through the wrapped driver.
func (s *SharedConnection) SaveTableConfig(ctx context.Context, table string, cfg core.TableConfig, saveLocal bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.SaveTableConfig(ctx, table, cfg, saveLocal)
}

// Close releases the wrapped driver's resources.
func (s *SharedConnection) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drv.Close()
}

// Exclusive runs fn with exclusive access to the wrapped driver, for callers
// that need several contract operations to execute as one unit.
func (s *SharedConnection) Exclusive(fn func(drv driver.Driver) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.drv)
}
