// Package sqlite provides a SQLite backend driver for BaseHub.
//
// It exists mainly as the extension-point demonstrator: a second source-type
// variant behind the same driver contract, using a pure-Go engine so no CGO
// toolchain is needed.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

// Driver implements driver.Driver for SQLite.
type Driver struct {
	driver.BaseSQLDriver
}

// New creates a new SQLite driver instance. If logger is nil, a discard
// logger is used; store backs remote table-config saves and may be nil.
func New(logger *slog.Logger, store core.ConfigStore) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		BaseSQLDriver: driver.BaseSQLDriver{Logger: logger, Store: store},
	}
}

// Connect opens the SQLite database file named by cfg.Database
// (":memory:" for an in-memory database).
func (d *Driver) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	if cfg.Database == "" {
		return fmt.Errorf("invalid sqlite config: database path is required")
	}

	d.Logger.Debug("opening sqlite database", slog.String("path", cfg.Database))

	db, err := sql.Open("sqlite", cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One pooled conn: keeps in-memory databases coherent and sidesteps
	// SQLITE_BUSY on concurrent writes. Callers serialize through the
	// shared handle anyway.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	d.Bind(db, cfg)
	return nil
}

// Details reports the SQLite library version and database path.
func (d *Driver) Details(ctx context.Context) (*core.ConnectionDetails, error) {
	if !d.IsConnected() {
		return nil, driver.ErrNotConnected
	}

	var version string
	if err := d.DB.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to query sqlite version: %w", err)
	}

	return &core.ConnectionDetails{
		Driver:           "sqlite",
		Database:         d.Cfg.Database,
		Version:          version,
		ConfiguredTables: d.ConfiguredTables(),
	}, nil
}

// LoadTables enumerates user tables from sqlite_master. SQLite keeps no
// creation or modification timestamps, so those fields stay unset.
func (d *Driver) LoadTables(ctx context.Context) ([]core.TableSummary, error) {
	if !d.IsConnected() {
		return nil, driver.ErrNotConnected
	}

	rows, err := d.DB.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	tables := []core.TableSummary{}
	for _, name := range names {
		summary := core.TableSummary{Name: name}

		if err := d.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM pragma_table_info(?)", name,
		).Scan(&summary.ColCount); err != nil {
			return nil, fmt.Errorf("failed to count columns of %s: %w", name, err)
		}

		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, strings.ReplaceAll(name, `"`, `""`))
		if err := d.DB.QueryRowContext(ctx, countQuery).Scan(&summary.RowCount); err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", name, err)
		}

		tables = append(tables, summary)
	}

	return tables, nil
}

// TableExists checks sqlite_master for a table with the given name.
// SQLite table names are case-insensitive by default; the LIKE-less equality
// match here keeps the stricter, case-sensitive reading.
func (d *Driver) TableExists(ctx context.Context, name string) (bool, error) {
	if !d.IsConnected() {
		return false, driver.ErrNotConnected
	}

	var count int
	err := d.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return count > 0, nil
}

// SaveTableConfig persists a table config locally or to the remote store.
func (d *Driver) SaveTableConfig(ctx context.Context, table string, cfg core.TableConfig, saveLocal bool) error {
	exists, err := d.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", driver.ErrTableNotFound, table)
	}
	return d.StoreTableConfig(ctx, table, cfg, saveLocal)
}
