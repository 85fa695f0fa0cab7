// cmd/refresh/main.go
// Rebuilds the race catalog (RACES_FILE) from the public race list page.
// Exits non-zero on any fetch or parse failure so a broken page never
// replaces good data.
//
// Usage:
//
//	RACES_FILE=data/races.json go run ./cmd/refresh
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/config"
	applog "github.com/padraicbc/umaplan/logger"
	"github.com/padraicbc/umaplan/scraper"
)

func main() {
	cfg := config.LoadRefresh()
	logger, err := applog.New(cfg.Debug, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	stats, err := scraper.New(cfg.Timeout, logger).Run(ctx, cfg.SourceURL, cfg.OutputFile)
	if err != nil {
		logger.Fatal("refresh failed", zap.String("source", cfg.SourceURL), zap.Error(err))
	}
	logger.Info("done", zap.Int("races", stats.Races), zap.Any("unmapped", stats.Misses))
}
