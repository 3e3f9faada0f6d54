package newsdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/newsdex/internal/bootstrap"
	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/engine/redis"
	"github.com/kailas-cloud/newsdex/internal/query"
	aggregationuc "github.com/kailas-cloud/newsdex/internal/usecase/aggregation"
	healthuc "github.com/kailas-cloud/newsdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/newsdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	FullText(ctx context.Context, query, temporalExpression, georeference string) ([]domain.SearchResult, error)
	Autocomplete(ctx context.Context, prefix string) ([]string, error)
}

type aggregationUseCase interface {
	TopGeoreferences(ctx context.Context) ([]domain.GeoBucket, error)
	Distribution(ctx context.Context) ([]domain.TimeBucket, error)
}

type articleLoader interface {
	Load(ctx context.Context, articles []domain.Article) ([]string, error)
}

// Client is the newsdex SDK entry point.
type Client struct {
	gateway   *engine.Gateway
	loader    articleLoader
	searchSvc searchUseCase
	aggSvc    aggregationUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the engine.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.engine.Driver == "" {
		return nil, errors.New("newsdex: engine required (use WithElasticsearch, WithRedis or WithBleve)")
	}

	driver, err := bootstrap.OpenDriver(ctx, cfg.engine)
	if err != nil {
		return nil, fmt.Errorf("newsdex: open %s: %w", cfg.engine.Driver, err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}

	c := wireClient(driver, cfg, obs)
	if err := c.gateway.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		c.Close()
		return nil, fmt.Errorf("newsdex: engine not ready: %w", err)
	}
	return c, nil
}

func wireClient(driver engine.Driver, cfg *clientConfig, obs *observer) *Client {
	gateway := engine.NewGateway(driver, cfg.engine.Timeout())
	builder := query.NewBuilder(cfg.engine.Index, cfg.maxResults)

	return &Client{
		gateway:   gateway,
		loader:    loaderFor(driver),
		searchSvc: searchuc.New(gateway, builder),
		aggSvc:    aggregationuc.New(gateway, builder),
		healthSvc: healthuc.New(gateway, gateway.Driver()),
		obs:       obs,
	}
}

// loaderFor returns nil for backends that the SDK cannot write to.
func loaderFor(driver engine.Driver) articleLoader {
	switch d := driver.(type) {
	case *redis.Driver:
		return redisLoader{driver: d}
	case articleLoader:
		return d
	default:
		return nil
	}
}

type redisLoader struct {
	driver *redis.Driver
}

func (l redisLoader) Load(ctx context.Context, articles []domain.Article) ([]string, error) {
	return l.driver.Load(ctx, redis.DefaultPrefix, articles)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.gateway != nil {
		_ = c.gateway.Close()
	}
}

// Driver returns the engine backend name.
func (c *Client) Driver() string {
	return c.gateway.Driver()
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.gateway.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SearchOption narrows a full-text search.
type SearchOption func(*searchParams)

type searchParams struct {
	temporal string
	place    string
}

// During requires a match on the article's temporal expressions.
func During(expression string) SearchOption {
	return func(p *searchParams) { p.temporal = expression }
}

// InPlace requires a match on the article's georeferences.
func InPlace(place string) SearchOption {
	return func(p *searchParams) { p.place = place }
}

// Search runs a full-text search ranked by relevance, title matches first.
func (c *Client) Search(ctx context.Context, q string, opts ...SearchOption) (_ []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	var p searchParams
	for _, o := range opts {
		o(&p)
	}
	results, err := c.searchSvc.FullText(ctx, q, p.temporal, p.place)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// Suggest returns up to ten titles completing prefix. Prefixes shorter than
// three characters yield an empty list.
func (c *Client) Suggest(ctx context.Context, prefix string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	titles, err := c.searchSvc.Autocomplete(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return titles, nil
}

// TopGeoreferences returns the ten most mentioned places.
func (c *Client) TopGeoreferences(ctx context.Context) (_ []GeoBucket, err error) {
	start := time.Now()
	defer func() { c.obs.observe("top_georeferences", start, err) }()

	buckets, err := c.aggSvc.TopGeoreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("top georeferences: %w", err)
	}
	return buckets, nil
}

// Distribution returns the number of articles per day in chronological order.
func (c *Client) Distribution(ctx context.Context) (_ []TimeBucket, err error) {
	start := time.Now()
	defer func() { c.obs.observe("distribution", start, err) }()

	buckets, err := c.aggSvc.Distribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}
	return buckets, nil
}

// Load indexes articles and returns their IDs. Returns ErrReadOnly on Elasticsearch.
func (c *Client) Load(ctx context.Context, articles []Article) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	if c.loader == nil {
		return nil, ErrReadOnly
	}
	ids, err := c.loader.Load(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return ids, nil
}
