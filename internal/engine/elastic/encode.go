package elastic

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/newsdex/internal/query"
)

// encode renders a descriptor as an Elasticsearch search body.
func encode(desc query.Descriptor) (map[string]any, error) {
	switch q := desc.(type) {
	case *query.FullText:
		return encodeFullText(q), nil
	case *query.Autocomplete:
		return encodeAutocomplete(q), nil
	case *query.TopTerms:
		return encodeTopTerms(q), nil
	case *query.DateHistogram:
		return encodeDateHistogram(q), nil
	default:
		return nil, fmt.Errorf("unsupported descriptor %T", desc)
	}
}

func encodeFullText(q *query.FullText) map[string]any {
	fields := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		fields = append(fields, boostedField(f))
	}

	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":  q.Query,
				"fields": fields,
			},
		},
	}
	if len(q.Should) > 0 {
		should := make([]any, 0, len(q.Should))
		for _, m := range q.Should {
			should = append(should, map[string]any{
				"match": map[string]any{m.Field: m.Value},
			})
		}
		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = q.MinimumShouldMatch
	}

	return map[string]any{
		"_source": q.Source,
		"size":    q.Size,
		"query":   map[string]any{"bool": boolQuery},
		"sort":    []any{map[string]any{"_score": map[string]any{"order": "desc"}}},
	}
}

func encodeAutocomplete(q *query.Autocomplete) map[string]any {
	return map[string]any{
		"_source": q.Source,
		"size":    q.Size,
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"fuzzy": map[string]any{q.Field: map[string]any{
						"value":          q.Fuzzy.Value,
						"fuzziness":      q.Fuzzy.Fuzziness,
						"prefix_length":  q.Fuzzy.PrefixLength,
						"max_expansions": q.Fuzzy.MaxExpansions,
					}}},
					map[string]any{"match_phrase": map[string]any{q.Field: map[string]any{
						"query": q.Phrase,
					}}},
					map[string]any{"wildcard": map[string]any{q.Field: map[string]any{
						"value": q.Contains,
					}}},
				},
				"minimum_should_match": q.MinimumShouldMatch,
			},
		},
	}
}

func encodeTopTerms(q *query.TopTerms) map[string]any {
	return map[string]any{
		"size": 0,
		"aggs": map[string]any{
			q.Name: map[string]any{
				"terms": map[string]any{
					"field": q.Field,
					"size":  q.Size,
					"order": []any{
						map[string]any{"_count": "desc"},
						map[string]any{"_key": "asc"},
					},
				},
			},
		},
	}
}

func encodeDateHistogram(q *query.DateHistogram) map[string]any {
	return map[string]any{
		"size": 0,
		"aggs": map[string]any{
			q.Name: map[string]any{
				"date_histogram": map[string]any{
					"field":          q.Field,
					"fixed_interval": q.Interval,
					"format":         q.Format,
					"min_doc_count":  q.MinDocCount,
					"order":          map[string]any{"_key": "asc"},
				},
			},
		},
	}
}

// boostedField renders "Title^2"; a boost of 1 is left implicit.
func boostedField(f query.FieldBoost) string {
	if f.Boost == 1 {
		return f.Field
	}
	return f.Field + "^" + strconv.FormatFloat(f.Boost, 'f', -1, 64)
}
