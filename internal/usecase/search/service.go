package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/projection"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// Service handles the document-level intents: full-text search and autocomplete.
type Service struct {
	exec    Executor
	builder *query.Builder
}

// New creates a search service.
func New(exec Executor, builder *query.Builder) *Service {
	return &Service{exec: exec, builder: builder}
}

// FullText returns the articles matching q in descending relevance order.
// Empty temporalExpression or georeference add no clauses.
func (s *Service) FullText(
	ctx context.Context, q, temporalExpression, georeference string,
) ([]domain.SearchResult, error) {
	desc, err := s.builder.FullText(q, temporalExpression, georeference)
	if err != nil {
		return nil, err
	}

	res, err := s.exec.Execute(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	return projection.Results(res.Hits), nil
}

// Autocomplete returns up to domain.MaxSuggestions titles for prefix. Prefixes
// shorter than domain.MinPrefixLength yield an empty list without an engine call.
func (s *Service) Autocomplete(ctx context.Context, prefix string) ([]string, error) {
	desc, err := s.builder.Autocomplete(prefix)
	if errors.Is(err, domain.ErrPrefixTooShort) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	res, err := s.exec.Execute(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return projection.Suggestions(res.Hits), nil
}
