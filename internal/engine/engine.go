// Package engine executes query descriptors against an external inverted-index engine.
package engine

import (
	"context"

	"github.com/kailas-cloud/newsdex/internal/query"
)

// Driver speaks one engine's wire protocol over a pooled client.
type Driver interface {
	// Name identifies the driver in logs and metrics.
	Name() string
	// Execute runs the descriptor. Implementations must honour ctx cancellation
	// and release any pooled connection before returning.
	Execute(ctx context.Context, desc query.Descriptor) (*Result, error)
	Ping(ctx context.Context) error
	Close() error
}

// Result is the raw engine response, in engine order.
type Result struct {
	Total   int
	Hits    []Hit
	Buckets []Bucket
}

// Hit is a single matching document.
type Hit struct {
	ID     string
	Score  float64
	Source map[string]any
}

// Bucket is one aggregation group. Key is the term, or the formatted date for histograms.
type Bucket struct {
	Key      string
	DocCount int64
}
