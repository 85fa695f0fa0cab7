package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/config"
	"github.com/padraicbc/umaplan/db"
)

// Open returns the Provider named by cfg.Driver. For postgres the tables
// are created if missing.
func Open(ctx context.Context, cfg config.StoreConfig, debug bool, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case DriverPostgres:
		bdb, err := db.Open(ctx, cfg, debug)
		if err != nil {
			return nil, err
		}
		if err := db.CreateTables(ctx, bdb); err != nil {
			_ = bdb.Close()
			return nil, err
		}
		logger.Debug("plan store ready", zap.String("driver", cfg.Driver), zap.String("host", cfg.DBHost))
		return NewPostgres(bdb, true), nil
	case DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Debug("plan store ready", zap.String("driver", cfg.Driver), zap.String("path", cfg.SQLitePath))
		return s, nil
	case DriverMySQL:
		s, err := OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		logger.Debug("plan store ready", zap.String("driver", cfg.Driver))
		return s, nil
	case DriverMemory:
		logger.Warn("plan store is in memory; plans are lost on exit")
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
