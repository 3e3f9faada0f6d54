package aggregation

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/projection"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// Service handles the aggregation intents.
type Service struct {
	exec    Executor
	builder *query.Builder
}

// New creates an aggregation service.
func New(exec Executor, builder *query.Builder) *Service {
	return &Service{exec: exec, builder: builder}
}

// TopGeoreferences returns the most frequent place names, at most domain.MaxBuckets,
// by document count descending.
func (s *Service) TopGeoreferences(ctx context.Context) ([]domain.GeoBucket, error) {
	desc, err := s.builder.TopGeoreferences()
	if err != nil {
		return nil, err
	}
	res, err := s.exec.Execute(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("top georeferences: %w", err)
	}
	return projection.GeoBuckets(res.Buckets), nil
}

// Distribution returns the number of documents per calendar day, oldest first.
func (s *Service) Distribution(ctx context.Context) ([]domain.TimeBucket, error) {
	desc, err := s.builder.TimeHistogram()
	if err != nil {
		return nil, err
	}
	res, err := s.exec.Execute(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}
	return projection.TimeBuckets(res.Buckets), nil
}
