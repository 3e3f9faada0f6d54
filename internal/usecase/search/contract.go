package search

import (
	"context"

	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// Executor runs a query descriptor against the index engine.
type Executor interface {
	Execute(ctx context.Context, desc query.Descriptor) (*engine.Result, error)
}
