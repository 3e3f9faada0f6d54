package projection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/newsdex/internal/domain"
)

// Date renders a stored date as yyyy-MM-dd in UTC. RFC 3339 timestamps, plain days
// and epoch numbers (seconds, or milliseconds from 1e11 up) are recognised; anything
// else is returned in its string form.
func Date(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return dateString(d)
	case json.Number:
		if n, err := d.Int64(); err == nil {
			return epochDay(n)
		}
		if f, err := d.Float64(); err == nil {
			return epochDay(int64(f))
		}
		return d.String()
	case float64:
		return epochDay(int64(d))
	case int64:
		return epochDay(d)
	case int:
		return epochDay(int64(d))
	case time.Time:
		return d.UTC().Format(domain.DayLayout)
	default:
		return stringify(d)
	}
}

func dateString(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(domain.DayLayout)
	}
	if t, err := time.Parse(domain.DayLayout, s); err == nil {
		return t.Format(domain.DayLayout)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return epochDay(n)
	}
	return s
}

// Seconds past this are beyond year 5000; Elasticsearch's epoch_millis lands here.
const millisThreshold = 100_000_000_000

func epochDay(n int64) string {
	if n >= millisThreshold || n <= -millisThreshold {
		return time.UnixMilli(n).UTC().Format(domain.DayLayout)
	}
	return time.Unix(n, 0).UTC().Format(domain.DayLayout)
}

// Georeferences flattens the stored place names into a list. Each string is one
// place, commas included; objects contribute their "name".
func Georeferences(v any) []string {
	out := []string{}
	var walk func(any)
	walk = func(v any) {
		switch g := v.(type) {
		case nil:
		case string:
			if g = strings.TrimSpace(g); g != "" {
				out = append(out, g)
			}
		case []string:
			for _, s := range g {
				walk(s)
			}
		case []any:
			for _, e := range g {
				walk(e)
			}
		case map[string]any:
			walk(g["name"])
		default:
			out = append(out, stringify(g))
		}
	}
	walk(v)
	return out
}

func stringify(v any) string {
	return fmt.Sprint(v)
}
