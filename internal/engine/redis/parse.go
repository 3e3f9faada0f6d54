package redis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
)

// parseSearch reads a WITHSCORES reply: [total, key1, score1, fields1, key2, ...].
func parseSearch(raw []rueidis.RedisMessage) (*engine.Result, error) {
	if len(raw) == 0 {
		return &engine.Result{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	hits := make([]engine.Hit, 0, (len(raw)-1)/3)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse key at %d: %w", i, err)
		}
		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse score of %s: %w", key, err)
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			return nil, fmt.Errorf("parse score of %s: %w", key, err)
		}
		fields, err := raw[i+2].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse fields of %s: %w", key, err)
		}

		hits = append(hits, engine.Hit{
			ID:     key,
			Score:  score,
			Source: source(parseFieldPairs(fields)),
		})
	}

	return &engine.Result{Total: int(total), Hits: hits}, nil
}

// parseAggregate reads an FT.AGGREGATE reply: [rows, [k, v, ...], ...]. Each row
// becomes a bucket keyed by keyField with its doc_count.
func parseAggregate(raw []rueidis.RedisMessage, keyField string) (*engine.Result, error) {
	if len(raw) == 0 {
		return &engine.Result{Buckets: []engine.Bucket{}}, nil
	}

	buckets := make([]engine.Bucket, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		pairs, err := raw[i].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", i, err)
		}
		row := parseFieldPairs(pairs)

		key := row[keyField]
		if key == "" {
			continue
		}
		count, err := strconv.ParseInt(row["doc_count"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse doc_count of %q: %w", key, err)
		}
		buckets = append(buckets, engine.Bucket{Key: key, DocCount: count})
	}

	return &engine.Result{Buckets: buckets}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// source converts hash fields to a document; the epoch-seconds date stays numeric
// and the comma-joined TAG value is split back into a list.
func source(fields map[string]string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	if v, ok := fields[domain.FieldDate]; ok {
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			out[domain.FieldDate] = json.Number(v)
		}
	}
	if v, ok := fields[domain.FieldGeoreferences]; ok {
		out[domain.FieldGeoreferences] = splitTags(v)
	}
	return out
}

func splitTags(v string) []any {
	tags := []any{}
	for _, part := range strings.Split(v, tagSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
