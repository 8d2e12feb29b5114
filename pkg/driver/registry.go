package driver

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/basehub-labs/basehub/pkg/core"
)

// Factory constructs a driver instance. The logger may be nil (drivers fall
// back to a discard logger); the store backs remote table-config saves and
// may be nil for callers that never save remotely.
type Factory func(*slog.Logger, core.ConfigStore) Driver

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a driver factory for a source-type variant. Variant names
// are case-insensitive. Called by driver implementations in their init()
// functions.
func Register(variant string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(variant)] = factory
}

// Get retrieves a driver factory by variant name.
func Get(variant string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(variant)]
	return f, ok
}

// IsRegistered checks if a driver is registered for the variant.
func IsRegistered(variant string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[strings.ToLower(variant)]
	return ok
}

// ListVariants returns all registered variant names (sorted).
func ListVariants() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a driver instance for the config's source type. The logger and
// config store are passed through to the driver constructor.
//
// Only database sources with a registered variant are dispatched; anything
// else fails with *UnsupportedSourceError so unsupported variants surface as
// explicit errors instead of dead code paths.
func New(cfg core.ConnectionConfig, logger *slog.Logger, store core.ConfigStore) (Driver, error) {
	src := cfg.Source
	if src.Kind == "" {
		return nil, fmt.Errorf("source kind not specified")
	}
	if src.Kind != core.SourceDatabase {
		return nil, &UnsupportedSourceError{Source: src, Available: ListVariants()}
	}

	factory, ok := Get(src.Variant)
	if !ok {
		return nil, &UnsupportedSourceError{Source: src, Available: ListVariants()}
	}
	return factory(logger, store), nil
}

// UnsupportedSourceError is returned when no driver exists for the requested
// source type.
type UnsupportedSourceError struct {
	Source    core.SourceType
	Available []string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported source type %q (available drivers: %s)",
		e.Source, strings.Join(e.Available, ", "))
}
