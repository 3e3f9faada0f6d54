// Package embedded implements engine.Driver on an in-process bleve index.
// It serves local development and end-to-end tests without an external engine.
package embedded

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// Compile-time check: Driver implements engine.Driver.
var _ engine.Driver = (*Driver)(nil)

// Config selects where the index lives. An empty Path keeps it in memory.
type Config struct {
	Path string
}

// Driver implements engine.Driver via bleve.
type Driver struct {
	index bleve.Index
}

// Open opens the index at cfg.Path, creating it with the article mapping when absent.
func Open(cfg Config) (*Driver, error) {
	if cfg.Path == "" {
		return NewMemOnly()
	}

	idx, err := bleve.Open(cfg.Path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(cfg.Path, newIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return &Driver{index: idx}, nil
}

// NewMemOnly creates an empty in-memory index.
func NewMemOnly() (*Driver, error) {
	idx, err := bleve.NewMemOnly(newIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Driver{index: idx}, nil
}

// Name implements engine.Driver.
func (d *Driver) Name() string { return "bleve" }

// Execute runs desc against the local index. The descriptor's index name is
// ignored: a Driver holds exactly one index.
func (d *Driver) Execute(ctx context.Context, desc query.Descriptor) (*engine.Result, error) {
	switch q := desc.(type) {
	case *query.FullText:
		return d.search(ctx, engine.OpSearch, fullTextRequest(q), q.Source)
	case *query.Autocomplete:
		return d.search(ctx, engine.OpSearch, autocompleteRequest(q), q.Source)
	case *query.TopTerms:
		return d.topTerms(ctx, q)
	case *query.DateHistogram:
		return d.histogram(ctx, q)
	default:
		return nil, engine.QueryError(engine.OpSearch, fmt.Errorf("unsupported descriptor %T", desc))
	}
}

// Ping reports whether the index is open.
func (d *Driver) Ping(_ context.Context) error {
	if _, err := d.index.DocCount(); err != nil {
		return engine.Unavailable(engine.OpPing, err)
	}
	return nil
}

// Close closes the index.
func (d *Driver) Close() error {
	return d.index.Close()
}

// Count returns the number of indexed articles.
func (d *Driver) Count() (uint64, error) {
	return d.index.DocCount()
}

// wrap leaves context errors for the gateway to classify.
func wrap(ctx context.Context, op string, err error) error {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, bleve.ErrorIndexClosed):
		return engine.Unavailable(op, err)
	default:
		return engine.QueryError(op, err)
	}
}
