package session_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/internal/config"
	"tripwise/internal/infra"
	"tripwise/internal/repositories"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	provideSessionRepository,
	provideSessionSigner,
	provideSessionCookie,
)

// provideSessionRepository keeps wizard state in redis when REDIS_ADDR is set,
// in process memory otherwise.
func provideSessionRepository(lc fx.Lifecycle, cfg *config.Config, store mem.TTLStore, log *zap.Logger) (repositories.SessionRepository, error) {
	if cfg.Redis.Address == "" {
		log.Info("using in-memory session store")
		return repositories.NewMemorySessionRepository(store, cfg.Session.TTL), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("using redis session store", zap.String("addr", cfg.Redis.Address))
	return repositories.NewRedisSessionRepository(client, cfg.Session.TTL), nil
}

func provideSessionSigner(cfg *config.Config, log *zap.Logger) (*utils.SessionSigner, error) {
	secret := cfg.Session.Secret
	if secret == "" {
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			return nil, err
		}
		secret = generated
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}
	return utils.NewSessionSigner(secret, cfg.Session.TTL), nil
}

func provideSessionCookie(cfg *config.Config) middleware.SessionCookie {
	return middleware.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	}
}
