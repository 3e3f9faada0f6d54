package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/newsdex/internal/logger"
	"github.com/kailas-cloud/newsdex/internal/metrics"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// DefaultTimeout bounds a single engine round trip.
const DefaultTimeout = 5 * time.Second

// Gateway executes descriptors on a Driver with a per-call timeout and
// classifies failures into Unavailable, Timeout and QueryError. It never retries.
type Gateway struct {
	driver  Driver
	timeout time.Duration
}

// NewGateway creates a Gateway. timeout <= 0 selects DefaultTimeout.
func NewGateway(driver Driver, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{driver: driver, timeout: timeout}
}

// Execute validates desc and runs it on the driver.
func (g *Gateway) Execute(ctx context.Context, desc query.Descriptor) (*Result, error) {
	if desc == nil {
		return nil, QueryError(OpValidate, errors.New("descriptor is required"))
	}
	if err := desc.Validate(); err != nil {
		err = QueryError(OpValidate, err)
		g.observe(ctx, desc.Intent(), time.Now(), err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	res, err := g.driver.Execute(ctx, desc)
	if err != nil {
		err = classify(ctx, opFor(desc), err)
		g.observe(ctx, desc.Intent(), start, err)
		return nil, err
	}
	if res == nil {
		res = &Result{}
	}
	g.observe(ctx, desc.Intent(), start, nil)
	return res, nil
}

// Ping checks engine connectivity within the gateway timeout.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	if err := g.driver.Ping(ctx); err != nil {
		return classify(ctx, OpPing, err)
	}
	return nil
}

// Close releases the driver's connection pool.
func (g *Gateway) Close() error {
	return g.driver.Close()
}

// Driver returns the name of the underlying driver.
func (g *Gateway) Driver() string {
	return g.driver.Name()
}

func (g *Gateway) observe(ctx context.Context, intent query.Intent, start time.Time, err error) {
	dur := time.Since(start)
	outcome := "ok"
	if err != nil {
		kind, _ := KindOf(err)
		outcome = kind.String()
	}

	metrics.EngineRequestsTotal.WithLabelValues(g.driver.Name(), string(intent), outcome).Inc()
	metrics.EngineRequestDuration.WithLabelValues(g.driver.Name(), string(intent)).Observe(dur.Seconds())

	log := logpkg.FromContext(ctx)
	if err != nil {
		log.Debug("engine request failed",
			zap.String("driver", g.driver.Name()),
			zap.String("intent", string(intent)),
			zap.String("kind", outcome),
			zap.Duration("latency", dur),
			zap.Error(err),
		)
		return
	}
	log.Debug("engine request",
		zap.String("driver", g.driver.Name()),
		zap.String("intent", string(intent)),
		zap.Duration("latency", dur),
	)
}

func opFor(desc query.Descriptor) string {
	switch desc.(type) {
	case *query.TopTerms, *query.DateHistogram:
		return OpAggregate
	default:
		return OpSearch
	}
}
