// Package mysql provides the MySQL backend driver for BaseHub.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

// Driver implements driver.Driver for MySQL. Table discovery reads
// information_schema, so counts and timestamps are as fresh as the server's
// statistics.
type Driver struct {
	driver.BaseSQLDriver
}

// New creates a new MySQL driver instance. If logger is nil, a discard
// logger is used; store backs remote table-config saves and may be nil.
func New(logger *slog.Logger, store core.ConfigStore) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		BaseSQLDriver: driver.BaseSQLDriver{Logger: logger, Store: store},
	}
}

// Connect establishes a connection to MySQL.
func (d *Driver) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return fmt.Errorf("invalid mysql config: %w", err)
	}

	d.Logger.Debug("connecting to mysql",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	d.Bind(db, cfg)
	return nil
}

// buildDSN constructs a MySQL connection string from the config.
func buildDSN(cfg core.ConnectionConfig) (string, error) {
	if cfg.Database == "" {
		return "", fmt.Errorf("database name is required")
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := gomysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = host + ":" + strconv.Itoa(port)
	mc.DBName = cfg.Database
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	if cfg.Options != nil {
		if mode, ok := cfg.Options["tls"]; ok {
			mc.TLSConfig = mode
		}
	}
	return mc.FormatDSN(), nil
}

// Details returns the server version and connection identity metadata.
func (d *Driver) Details(ctx context.Context) (*core.ConnectionDetails, error) {
	if !d.IsConnected() {
		return nil, driver.ErrNotConnected
	}

	var version string
	if err := d.DB.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to query mysql version: %w", err)
	}

	return &core.ConnectionDetails{
		Driver:           "mysql",
		Host:             d.Cfg.Host,
		Database:         d.Cfg.Database,
		Version:          version,
		ConfiguredTables: d.ConfiguredTables(),
	}, nil
}

// loadTablesQuery joins tables and columns from information_schema so one
// round trip yields name, row estimate, column count, and timestamps.
const loadTablesQuery = `
	SELECT
		t.TABLE_NAME,
		COALESCE(t.TABLE_ROWS, 0),
		COUNT(c.COLUMN_NAME),
		DATE_FORMAT(t.CREATE_TIME, '%Y-%m-%d %H:%i:%s'),
		DATE_FORMAT(t.UPDATE_TIME, '%Y-%m-%d %H:%i:%s')
	FROM information_schema.TABLES t
	LEFT JOIN information_schema.COLUMNS c
		ON c.TABLE_SCHEMA = t.TABLE_SCHEMA AND c.TABLE_NAME = t.TABLE_NAME
	WHERE t.TABLE_SCHEMA = ?
	GROUP BY t.TABLE_NAME, t.TABLE_ROWS, t.CREATE_TIME, t.UPDATE_TIME
	ORDER BY t.TABLE_NAME
`

// LoadTables enumerates all tables in the connected schema.
func (d *Driver) LoadTables(ctx context.Context) ([]core.TableSummary, error) {
	if !d.IsConnected() {
		return nil, driver.ErrNotConnected
	}

	rows, err := d.DB.QueryContext(ctx, loadTablesQuery, d.Cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tables := []core.TableSummary{}
	for rows.Next() {
		var (
			summary          core.TableSummary
			created, updated sql.NullString
		)
		if err := rows.Scan(&summary.Name, &summary.RowCount, &summary.ColCount, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan table summary: %w", err)
		}
		if created.Valid {
			summary.Created = &created.String
		}
		if updated.Valid {
			summary.Updated = &updated.String
		}
		tables = append(tables, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	return tables, nil
}

// TableExists checks information_schema for a table with the given name.
// MySQL's name-case rules (lower_case_table_names) apply server-side.
func (d *Driver) TableExists(ctx context.Context, name string) (bool, error) {
	if !d.IsConnected() {
		return false, driver.ErrNotConnected
	}

	var count int
	err := d.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?",
		d.Cfg.Database, name,
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
