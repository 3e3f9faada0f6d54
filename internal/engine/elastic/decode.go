package elastic

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Score  *float64       `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]aggregation `json:"aggregations"`
}

type aggregation struct {
	Buckets []bucket `json:"buckets"`
}

type bucket struct {
	Key         any    `json:"key"`
	KeyAsString string `json:"key_as_string"`
	DocCount    int64  `json:"doc_count"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// decode parses a successful search response for desc.
func decode(r io.Reader, desc query.Descriptor) (*engine.Result, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var resp searchResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	switch q := desc.(type) {
	case *query.TopTerms:
		return decodeBuckets(resp, q.Name)
	case *query.DateHistogram:
		return decodeBuckets(resp, q.Name)
	}

	hits := resp.Hits.Hits
	out := &engine.Result{
		Total: resp.Hits.Total.Value,
		Hits:  make([]engine.Hit, 0, len(hits)),
	}
	for _, h := range hits {
		hit := engine.Hit{ID: h.ID, Source: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

func decodeBuckets(resp searchResponse, name string) (*engine.Result, error) {
	agg, ok := resp.Aggregations[name]
	if !ok {
		return nil, fmt.Errorf("aggregation %q missing from response", name)
	}
	out := &engine.Result{
		Total:   resp.Hits.Total.Value,
		Buckets: make([]engine.Bucket, 0, len(agg.Buckets)),
	}
	for _, b := range agg.Buckets {
		out.Buckets = append(out.Buckets, engine.Bucket{
			Key:      bucketKey(b),
			DocCount: b.DocCount,
		})
	}
	return out, nil
}

// bucketKey prefers the formatted key that date histograms carry.
func bucketKey(b bucket) string {
	if b.KeyAsString != "" {
		return b.KeyAsString
	}
	switch k := b.Key.(type) {
	case string:
		return k
	case nil:
		return ""
	default:
		return fmt.Sprint(k)
	}
}

// decodeError extracts "type: reason" from an error body, falling back to the raw text.
func decodeError(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Type != "" {
		if er.Error.Reason == "" {
			return er.Error.Type
		}
		return er.Error.Type + ": " + er.Error.Reason
	}
	return string(body)
}
