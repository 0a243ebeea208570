package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/internal/config"
	"tripwise/internal/infra"
	"tripwise/internal/repositories"
)

var Module = fx.Provide(provideItineraryRepository)

// provideItineraryRepository opens the archive database when POSTGRES_URL is
// set. Without it the archive is disabled and generation still works.
func provideItineraryRepository(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (repositories.ItineraryRepository, error) {
	if cfg.Database.URL == "" {
		log.Info("itinerary archive disabled, POSTGRES_URL not set")
		return repositories.NewDisabledItineraryRepository(), nil
	}

	db, err := infra.InitPostgresql(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	log.Info("itinerary archive enabled")
	return repositories.NewItineraryRepository(db), nil
}
