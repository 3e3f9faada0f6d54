// Package projection maps engine hits and buckets to response DTOs.
// Every function preserves engine order and returns a non-nil slice.
package projection

import (
	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
)

// Results projects one SearchResult per hit, in rank order.
func Results(hits []engine.Hit) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, domain.SearchResult{
			Title:         stringField(h.Source, domain.FieldTitle),
			Content:       stringField(h.Source, domain.FieldContent),
			Date:          Date(h.Source[domain.FieldDate]),
			Georeferences: Georeferences(h.Source[domain.FieldGeoreferences]),
		})
	}
	return out
}

// Suggestions projects the title of every hit.
func Suggestions(hits []engine.Hit) []string {
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, stringField(h.Source, domain.FieldTitle))
	}
	return out
}

// GeoBuckets projects term buckets without reordering.
func GeoBuckets(buckets []engine.Bucket) []domain.GeoBucket {
	out := make([]domain.GeoBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.GeoBucket{Key: b.Key, DocCount: b.DocCount})
	}
	return out
}

// TimeBuckets projects histogram buckets without reordering.
func TimeBuckets(buckets []engine.Bucket) []domain.TimeBucket {
	out := make([]domain.TimeBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.TimeBucket{Date: b.Key, DocCount: b.DocCount})
	}
	return out
}

func stringField(src map[string]any, field string) string {
	switch v := src[field].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return stringify(v)
	}
}
