// Package mysql provides the MySQL backend driver for BaseHub.
//
// This file registers the driver with the driver registry. Import this
// package with a blank identifier to register it:
//
//	import _ "github.com/basehub-labs/basehub/pkg/drivers/mysql"
package mysql

import (
	"log/slog"

	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

func init() {
	driver.Register("mysql", func(logger *slog.Logger, store core.ConfigStore) driver.Driver {
		return New(logger, store)
	})
}
