package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"

	// Register the backend drivers.
	_ "github.com/basehub-labs/basehub/pkg/drivers/mysql"
	_ "github.com/basehub-labs/basehub/pkg/drivers/sqlite"
)

func newTablesCmd() *cobra.Command {
	var (
		variant  string
		host     string
		port     int
		username string
		password string
		database string
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Connect to a data source and list its tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			connCfg := core.ConnectionConfig{
				Source:   core.SourceType{Kind: core.SourceDatabase, Variant: variant},
				Host:     host,
				Port:     port,
				Username: username,
				Password: password,
				Database: database,
			}

			logger := newLogger(cfg.LogLevel)

			drv, err := driver.New(connCfg, logger, nil)
			if err != nil {
				return err
			}
			if err := drv.Connect(cmd.Context(), connCfg); err != nil {
				return err
			}
			defer func() { _ = drv.Close() }()

			tables, err := drv.LoadTables(cmd.Context())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Table", "Rows", "Columns", "Created", "Updated"})
			for _, summary := range tables {
				created, updated := "", ""
				if summary.Created != nil {
					created = *summary.Created
				}
				if summary.Updated != nil {
					updated = *summary.Updated
				}
				t.AppendRow(table.Row{summary.Name, summary.RowCount, summary.ColCount, created, updated})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "mysql", "Source variant (mysql|sqlite)")
	cmd.Flags().StringVar(&host, "host", "localhost", "Database host")
	cmd.Flags().IntVar(&port, "port", 0, "Database port (0 uses the driver default)")
	cmd.Flags().StringVar(&username, "username", "", "Database user")
	cmd.Flags().StringVar(&password, "password", "", "Database password")
	cmd.Flags().StringVar(&database, "database", "", "Database name, or file path for sqlite")
	_ = cmd.MarkFlagRequired("database")

	return cmd
}
