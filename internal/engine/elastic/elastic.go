// Package elastic implements engine.Driver on Elasticsearch via go-elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// Compile-time check: Driver implements engine.Driver.
var _ engine.Driver = (*Driver)(nil)

const (
	defaultPoolSize = 10
	maxErrorBody    = 64 << 10
)

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	Addrs    []string
	Username string
	Password string
	// PoolSize bounds idle and active connections per node.
	PoolSize int
}

// Driver implements engine.Driver via go-elasticsearch.
type Driver struct {
	client    *elasticsearch.Client
	transport *http.Transport
}

// NewDriver creates an Elasticsearch driver. Retries are disabled: retry policy belongs to the caller.
func NewDriver(cfg Config) (*Driver, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}
	pool := cfg.PoolSize
	if pool <= 0 {
		pool = defaultPoolSize
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        pool,
		MaxIdleConnsPerHost: pool,
		MaxConnsPerHost:     pool,
		IdleConnTimeout:     90 * time.Second,
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		Transport:    transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Driver{client: client, transport: transport}, nil
}

// Name implements engine.Driver.
func (d *Driver) Name() string { return "elasticsearch" }

// Execute encodes desc into the query DSL and runs it through _search.
func (d *Driver) Execute(ctx context.Context, desc query.Descriptor) (*engine.Result, error) {
	op := engine.OpSearch
	if desc.Intent() == query.IntentTopTerms || desc.Intent() == query.IntentDateHistogram {
		op = engine.OpAggregate
	}

	body, err := encode(desc)
	if err != nil {
		return nil, engine.QueryError(op, err)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, engine.QueryError(op, fmt.Errorf("marshal body: %w", err))
	}

	res, err := d.client.Search(
		d.client.Search.WithContext(ctx),
		d.client.Search.WithIndex(desc.IndexName()),
		d.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, engine.Unavailable(op, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return nil, statusError(op, res)
	}

	out, err := decode(res.Body, desc)
	if err != nil {
		return nil, engine.QueryError(engine.OpDecode, err)
	}
	return out, nil
}

// Ping checks cluster reachability.
func (d *Driver) Ping(ctx context.Context) error {
	res, err := d.client.Ping(d.client.Ping.WithContext(ctx))
	if err != nil {
		return engine.Unavailable(engine.OpPing, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return engine.Unavailable(engine.OpPing, fmt.Errorf("status %d", res.StatusCode))
	}
	return nil
}

// Close drops idle pooled connections.
func (d *Driver) Close() error {
	d.transport.CloseIdleConnections()
	return nil
}

// statusError maps an HTTP error status onto the engine taxonomy.
func statusError(op string, res *esapi.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	err := fmt.Errorf("status %d: %s", res.StatusCode, decodeError(raw))

	switch {
	case res.StatusCode == http.StatusRequestTimeout || res.StatusCode == http.StatusGatewayTimeout:
		return engine.Timeout(op, err)
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
		return engine.Unavailable(op, err)
	default:
		return engine.QueryError(op, err)
	}
}

// closeBody drains and closes the body so the connection returns to the pool.
func closeBody(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxErrorBody))
	_ = res.Body.Close()
}
