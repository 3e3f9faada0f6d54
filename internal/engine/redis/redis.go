// Package redis implements engine.Driver on RediSearch (Redis 8+) via rueidis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// Compile-time check: Driver implements engine.Driver.
var _ engine.Driver = (*Driver)(nil)

// Config holds connection parameters for a Redis server.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Driver implements engine.Driver via FT.SEARCH and FT.AGGREGATE.
type Driver struct {
	client rueidis.Client
}

// NewDriver creates a RediSearch driver with retries disabled.
func NewDriver(cfg Config) (*Driver, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		DisableRetry: true,
		AlwaysRESP2:  true, // reply parsing expects RESP2 arrays
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Driver{client: client}, nil
}

// Name implements engine.Driver.
func (d *Driver) Name() string { return "redis" }

// Execute translates desc into a RediSearch command and parses the reply.
func (d *Driver) Execute(ctx context.Context, desc query.Descriptor) (*engine.Result, error) {
	switch q := desc.(type) {
	case *query.FullText:
		return d.search(ctx, q.Index, fullTextQuery(q), q.Source, q.Size)
	case *query.Autocomplete:
		return d.search(ctx, q.Index, autocompleteQuery(q), q.Source, q.Size)
	case *query.TopTerms:
		return d.aggregate(ctx, topTermsArgs(q), "place")
	case *query.DateHistogram:
		args, err := histogramArgs(q)
		if err != nil {
			return nil, engine.QueryError(engine.OpAggregate, err)
		}
		return d.aggregate(ctx, args, "day")
	default:
		return nil, engine.QueryError(engine.OpSearch, fmt.Errorf("unsupported descriptor %T", desc))
	}
}

func (d *Driver) search(ctx context.Context, index, q string, fields []string, size int) (*engine.Result, error) {
	args := searchArgs(index, q, fields, size)
	raw, err := d.client.Do(ctx, d.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()).ToArray()
	if err != nil {
		return nil, wrap(engine.OpSearch, err)
	}
	res, err := parseSearch(raw)
	if err != nil {
		return nil, engine.QueryError(engine.OpDecode, err)
	}
	return res, nil
}

func (d *Driver) aggregate(ctx context.Context, args []string, keyField string) (*engine.Result, error) {
	raw, err := d.client.Do(ctx, d.client.B().Arbitrary("FT.AGGREGATE").Args(args...).Build()).ToArray()
	if err != nil {
		return nil, wrap(engine.OpAggregate, err)
	}
	res, err := parseAggregate(raw, keyField)
	if err != nil {
		return nil, engine.QueryError(engine.OpDecode, err)
	}
	return res, nil
}

// Ping checks connectivity.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.client.Do(ctx, d.client.B().Ping().Build()).Error(); err != nil {
		return engine.Unavailable(engine.OpPing, err)
	}
	return nil
}

// Close shuts down the client.
func (d *Driver) Close() error {
	d.client.Close()
	return nil
}

// wrap maps a server-side error reply to a query error and everything else to unavailability.
func wrap(op string, err error) error {
	if _, ok := rueidis.IsRedisErr(err); ok {
		return engine.QueryError(op, err)
	}
	return engine.Unavailable(op, err)
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
