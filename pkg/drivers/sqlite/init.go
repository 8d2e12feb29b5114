package sqlite

import (
	"log/slog"

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

func init() {
	driver.Register("sqlite", func(logger *slog.Logger, store core.ConfigStore) driver.Driver {
		return New(logger, store)
	})
}
