package mysql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

func newMockDriver(t *testing.T) (*Driver, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d := New(nil, nil)
	d.Bind(db, core.ConnectionConfig{
		Source:   core.SourceType{Kind: core.SourceDatabase, Variant: "mysql"},
		Host:     "db.internal",
		Database: "app",
	})
	return d, mock
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name      string
		cfg       core.ConnectionConfig
		want      string
		expectErr bool
	}{
		{
			name: "full config",
			cfg: core.ConnectionConfig{
				Host:     "db.internal",
				Port:     3307,
				Username: "admin",
				Password: "secret",
				Database: "app",
			},
			want: "admin:secret@tcp(db.internal:3307)/app",
		},
		{
			name: "defaults applied",
			cfg:  core.ConnectionConfig{Database: "app"},
			want: "tcp(localhost:3306)/app",
		},
		{
			name:      "missing database",
			cfg:       core.ConnectionConfig{Host: "db.internal"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := buildDSN(tt.cfg)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dsn)
		})
	}
}

func TestDriver_Details(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT VERSION()")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("8.0.36"))

	details, err := d.Details(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mysql", details.Driver)
	assert.Equal(t, "db.internal", details.Host)
	assert.Equal(t, "app", details.Database)
	assert.Equal(t, "8.0.36", details.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_Details_NotConnected(t *testing.T) {
	d := New(nil, nil)

	_, err := d.Details(context.Background())
	assert.ErrorIs(t, err, driver.ErrNotConnected)
}

func TestDriver_LoadTables(t *testing.T) {
	d, mock := newMockDriver(t)

	rows := sqlmock.NewRows([]string{"name", "rows", "cols", "created", "updated"}).
		AddRow("customers", 42, 6, "2024-01-10 09:30:00", "2024-03-01 12:00:00").
		AddRow("orders", 0, 4, "2024-01-10 09:31:00", nil)

	mock.ExpectQuery("FROM information_schema.TABLES t").
		WithArgs("app").
		WillReturnRows(rows)

	tables, err := d.LoadTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)

	customers := tables[0]
	assert.Equal(t, "customers", customers.Name)
	assert.Equal(t, uint32(42), customers.RowCount)
	assert.Equal(t, uint32(6), customers.ColCount)
	require.NotNil(t, customers.Created)
	assert.Equal(t, "2024-01-10 09:30:00", *customers.Created)

	orders := tables[1]
	assert.Equal(t, uint32(0), orders.RowCount)
	assert.Nil(t, orders.Updated, "NULL UPDATE_TIME should map to an absent timestamp")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_LoadTables_Empty(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery("FROM information_schema.TABLES t").
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows([]string{"name", "rows", "cols", "created", "updated"}))

	tables, err := d.LoadTables(context.Background())
	require.NoError(t, err, "zero tables is success, not an error")
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestDriver_TableExists(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "existing table", count: 1, want: true},
		{name: "missing table", count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, mock := newMockDriver(t)

			mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM information_schema.TABLES").
				WithArgs("app", "customers").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := d.TableExists(context.Background(), "customers")
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestDriver_SaveTableConfig_MissingTable(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM information_schema.TABLES").
		WithArgs("app", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := d.SaveTableConfig(context.Background(), "ghost", core.TableConfig{}, true)
	assert.ErrorIs(t, err, driver.ErrTableNotFound)
}

func TestDriver_SaveTableConfig_LocalReflectedInDetails(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM information_schema.TABLES").
		WithArgs("app", "customers").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT VERSION()")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("8.0.36"))

	cfg := core.TableConfig{"label": "Customers", "items_per_page": 50}
	require.NoError(t, d.SaveTableConfig(context.Background(), "customers", cfg, true))

	details, err := d.Details(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"customers"}, details.ConfiguredTables)
}
