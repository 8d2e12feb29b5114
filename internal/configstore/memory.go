// Package configstore provides implementations of the remote configuration
// collaborator (core.ConfigStore). The control-plane-backed store lives
// outside this repository; Memory is the in-process implementation used as
// the default and in tests.
package configstore

import (
	"context"
	"sync"

	"github.com/basehub-labs/basehub/pkg/core"
)

// Memory is an in-process core.ConfigStore. Safe for concurrent use.
type Memory struct {
	mu           sync.RWMutex
	tableConfigs map[string]map[string]core.TableConfig // conn id -> table -> config
	connConfigs  map[string]core.ConnectionConfig       // user id -> config
}

// NewMemory creates an empty in-memory config store.
func NewMemory() *Memory {
	return &Memory{
		tableConfigs: make(map[string]map[string]core.TableConfig),
		connConfigs:  make(map[string]core.ConnectionConfig),
	}
}

// SaveTableConfig stores a table config keyed by connection id and table name.
func (m *Memory) SaveTableConfig(_ context.Context, connID, table string, cfg core.TableConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tableConfigs[connID] == nil {
		m.tableConfigs[connID] = make(map[string]core.TableConfig)
	}
	m.tableConfigs[connID][table] = cfg
	return nil
}

// SaveConnectionConfig stores a connection config keyed by user id.
func (m *Memory) SaveConnectionConfig(_ context.Context, userID string, cfg core.ConnectionConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connConfigs[userID] = cfg
	return nil
}

// TableConfig returns the stored config for (connID, table), if any.
func (m *Memory) TableConfig(connID, table string) (core.TableConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.tableConfigs[connID][table]
	return cfg, ok
}

// ConnectionConfig returns the stored config for a user, if any.
func (m *Memory) ConnectionConfig(userID string) (core.ConnectionConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.connConfigs[userID]
	return cfg, ok
}
