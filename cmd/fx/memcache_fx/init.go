package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	mem "tripwise/pkg/memcache"
)

const sweepInterval = time.Minute

var Module = fx.Provide(provideMemcacheStore)

// provideMemcacheStore returns the in-process store and evicts expired entries
// in the background while the app runs.
func provideMemcacheStore(lc fx.Lifecycle, log *zap.Logger) mem.TTLStore {
	store := mem.NewStore()
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							log.Debug("expired sessions evicted", zap.Int("count", n))
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(done)
			return nil
		},
	})
	return store
}
