package newsdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/newsdex/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	engine config.EngineConfig

	maxResults       int
	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	cfg := config.Config{}
	cfg.ApplyDefaults()
	cfg.Engine.Driver = ""
	return &clientConfig{
		engine:           cfg.Engine,
		maxResults:       cfg.Search.MaxResults,
		readinessTimeout: defaultReadinessTimeout,
	}
}

// WithElasticsearch connects to an Elasticsearch cluster.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Driver = config.DriverElasticsearch
		c.engine.Addrs = addrs
	})
}

// WithRedis connects to a Redis instance with the search module.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Driver = config.DriverRedis
		c.engine.Addrs = []string{addr}
		c.engine.Password = password
	})
}

// WithBleve opens an embedded index at path. An empty path keeps the index in memory.
func WithBleve(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Driver = config.DriverBleve
		c.engine.Addrs = nil
		c.engine.Path = path
	})
}

// WithBasicAuth sets engine credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Username = username
		c.engine.Password = password
	})
}

// WithIndex sets the index name. Default: "news".
func WithIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Index = name
	})
}

// WithTimeout sets the per-request engine deadline. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.TimeoutMs = int(d / time.Millisecond)
	})
}

// WithMaxResults sets the number of full-text results. Default: 10, at most 100.
func WithMaxResults(n int) Option {
	return optionFunc(func(c *clientConfig) {
		if n > 0 && n <= config.MaxResultsCap {
			c.maxResults = n
		}
	})
}

// WithReadinessTimeout bounds the initial connectivity check. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
