// Package core defines the shared domain types for BaseHub: connection
// configuration, table summaries, and the collaborator contracts that the
// driver and registry layers exchange.
//
// The Golden Rule: pkg/core imports ONLY the standard library. Driver
// implementations and the registry depend on core, never the other way
// around.
package core

import "context"

// SourceKind is the top-level category of a data source.
type SourceKind string

const (
	// SourceDatabase is a relational database source.
	SourceDatabase SourceKind = "database"

	// SourceFile is reserved for file-backed sources (CSV, Parquet).
	// No driver ships for it yet; CreateConnection rejects it.
	SourceFile SourceKind = "file"
)

// SourceType identifies which category and variant of data source a
// ConnectionConfig targets. It is set once at construction and fully
// determines which driver is instantiated.
type SourceType struct {
	Kind    SourceKind `json:"kind" koanf:"kind"`
	Variant string     `json:"variant" koanf:"variant"` // mysql, sqlite, postgres, ...
}

func (s SourceType) String() string {
	if s.Variant == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + "/" + s.Variant
}

// ConnectionConfig describes how to reach a data source. The core does not
// retain it after connection creation; drivers copy what they need.
type ConnectionConfig struct {
	Source SourceType `json:"source" koanf:"source"`

	// Network databases
	Host     string `json:"host" koanf:"host"`
	Port     int    `json:"port" koanf:"port"`
	Username string `json:"username" koanf:"username"`
	Password string `json:"password,omitempty" koanf:"password"`

	// Database name, or file path for file-based engines.
	Database string `json:"database" koanf:"database"`

	// Additional driver-specific options (e.g. TLS mode).
	Options map[string]string `json:"options,omitempty" koanf:"options"`
}

// ConnectionDetails is backend-identifying metadata reported by a live
// connection.
type ConnectionDetails struct {
	Driver   string `json:"driver"`
	Host     string `json:"host,omitempty"`
	Database string `json:"database"`
	Version  string `json:"version"`

	// ConfiguredTables lists tables with a locally saved TableConfig,
	// so introspection reflects prior SaveTableConfig calls.
	ConfiguredTables []string `json:"configured_tables,omitempty"`
}

// TableSummary describes one table as seen at load time. Summaries are
// produced fresh on every LoadTables call and never cached by the core.
type TableSummary struct {
	Name     string  `json:"name"`
	RowCount uint32  `json:"row_count"`
	ColCount uint32  `json:"col_count"`
	Created  *string `json:"created,omitempty"`
	Updated  *string `json:"updated,omitempty"`
}

// TableConfig is an opaque configuration blob associated with one table.
// The core stores and forwards it without interpreting its contents.
type TableConfig map[string]any

// ConfigStore is the remote configuration collaborator. Table configs are
// keyed by (connection id, table name); connection configs by user id.
// Implementations must be safe for concurrent use.
type ConfigStore interface {
	SaveTableConfig(ctx context.Context, connID, table string, cfg TableConfig) error
	SaveConnectionConfig(ctx context.Context, userID string, cfg ConnectionConfig) error
}
