// Package bootstrap turns configuration into a connected engine driver.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/newsdex/internal/config"
	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/engine/elastic"
	"github.com/kailas-cloud/newsdex/internal/engine/embedded"
	"github.com/kailas-cloud/newsdex/internal/engine/redis"
)

// OpenDriver creates the driver selected by cfg.Driver. For redis the article
// index is created when missing so that an empty deployment answers queries.
func OpenDriver(ctx context.Context, cfg config.EngineConfig) (engine.Driver, error) {
	switch cfg.Driver {
	case config.DriverElasticsearch:
		drv, err := elastic.NewDriver(elastic.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			PoolSize: cfg.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		return drv, nil
	case config.DriverRedis:
		drv, err := redis.NewDriver(redis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, err
		}
		if err := drv.EnsureIndex(ctx, cfg.Index, redis.DefaultPrefix); err != nil {
			_ = drv.Close()
			return nil, fmt.Errorf("ensure index %s: %w", cfg.Index, err)
		}
		return drv, nil
	case config.DriverBleve:
		drv, err := embedded.Open(embedded.Config{Path: cfg.Path})
		if err != nil {
			return nil, err
		}
		return drv, nil
	default:
		return nil, fmt.Errorf("unknown engine driver %q", cfg.Driver)
	}
}
