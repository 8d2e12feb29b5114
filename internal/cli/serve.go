package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/basehub-labs/basehub/internal/auth"
	"github.com/basehub-labs/basehub/internal/configstore"
	"github.com/basehub-labs/basehub/internal/httpapi"
	"github.com/basehub-labs/basehub/internal/registry"

	// Register the backend drivers.
	_ "github.com/basehub-labs/basehub/pkg/drivers/mysql"
	_ "github.com/basehub-labs/basehub/pkg/drivers/sqlite"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the BaseHub API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.JWTSecret == "" {
				return fmt.Errorf("jwt_secret is required (flag --jwt-secret, env BASEHUB_JWT_SECRET, or config file)")
			}
			if cfg.SessionSecret == "" {
				return fmt.Errorf("session_secret is required (flag --session-secret, env BASEHUB_SESSION_SECRET, or config file)")
			}

			logger := newLogger(cfg.LogLevel)

			minter, err := auth.NewMinter(cfg.JWTSecret, cfg.TokenTTL)
			if err != nil {
				return err
			}

			reg := registry.New(minter, configstore.NewMemory(), logger)

			srv := httpapi.NewServer(httpapi.Config{
				Registry:      reg,
				Minter:        minter,
				Port:          cfg.Port,
				SessionSecret: cfg.SessionSecret,
				Logger:        logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}
}
