package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/internal/config"
	"tripwise/pkg/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
)

// provideLogger also installs the logger as zap's global one for helpers
// that log through zap.L().
func provideLogger(cfg *config.Config) *zap.Logger {
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	zap.ReplaceGlobals(log)
	return log
}
