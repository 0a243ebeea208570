package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripwise/cmd/fx/config_fx"
	"tripwise/cmd/fx/db_fx"
	"tripwise/cmd/fx/itinerary_fx"
	"tripwise/cmd/fx/memcache_fx"
	"tripwise/cmd/fx/metrics_fx"
	"tripwise/cmd/fx/session_fx"
	"tripwise/cmd/fx/wizard_fx"
)

// coreModules wires everything the wizard needs except the HTTP surface.
func coreModules() fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		metrics_fx.Module,
		memcache_fx.Module,
		session_fx.Module,
		db_fx.Module,
		itinerary_fx.Module,
		wizard_fx.Module,
	)
}
