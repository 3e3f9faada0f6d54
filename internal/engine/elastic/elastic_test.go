package elastic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

const infoBody = `{"name":"node-1","cluster_name":"test","version":{"number":"8.13.4","build_flavor":"default"},"tagline":"You Know, for Search"}`

// newTestServer fakes a single-node cluster; search requests go to search.
func newTestServer(t *testing.T, search http.HandlerFunc) (*Driver, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			_, _ = io.WriteString(w, infoBody)
			return
		}
		search(w, r)
	}))
	t.Cleanup(srv.Close)

	d, err := NewDriver(Config{Addrs: []string{srv.URL}, PoolSize: 2})
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, srv
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestDriver_FullText(t *testing.T) {
	var gotPath, gotBody string
	d, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[
			{"_id":"a","_score":2.5,"_source":{"Title":"Oil prices rise","Date":"2024-01-01"}},
			{"_id":"b","_score":1.0,"_source":{"Title":"Gulf tension"}}]}}`)
	})

	desc, err := query.NewBuilder("news", 10).FullText("oil", "", "")
	if err != nil {
		t.Fatalf("FullText: %v", err)
	}
	res, err := d.Execute(context.Background(), desc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if gotPath != "/news/_search" {
		t.Errorf("path = %q, want /news/_search", gotPath)
	}
	if !strings.Contains(gotBody, `"multi_match"`) {
		t.Errorf("body missing multi_match: %s", gotBody)
	}
	if res.Total != 2 || len(res.Hits) != 2 {
		t.Fatalf("got total=%d hits=%d", res.Total, len(res.Hits))
	}
	if res.Hits[0].ID != "a" || res.Hits[0].Score != 2.5 {
		t.Errorf("hit[0] = %+v", res.Hits[0])
	}
	if res.Hits[0].Source["Title"] != "Oil prices rise" {
		t.Errorf("hit[0] title = %v", res.Hits[0].Source["Title"])
	}
}

func TestDriver_TopTerms(t *testing.T) {
	d, _ := newTestServer(t, respond(http.StatusOK, `{"hits":{"total":{"value":7},"hits":[]},
		"aggregations":{"top_georeferences":{"buckets":[
			{"key":"Madrid","doc_count":5},{"key":"Lisbon","doc_count":2}]}}}`))

	desc, _ := query.NewBuilder("news", 10).TopGeoreferences()
	res, err := d.Execute(context.Background(), desc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []engine.Bucket{{Key: "Madrid", DocCount: 5}, {Key: "Lisbon", DocCount: 2}}
	if len(res.Buckets) != len(want) {
		t.Fatalf("buckets = %+v", res.Buckets)
	}
	for i := range want {
		if res.Buckets[i] != want[i] {
			t.Errorf("bucket[%d] = %+v, want %+v", i, res.Buckets[i], want[i])
		}
	}
}

func TestDriver_DateHistogramUsesFormattedKey(t *testing.T) {
	d, _ := newTestServer(t, respond(http.StatusOK, `{"hits":{"total":{"value":3},"hits":[]},
		"aggregations":{"documents_over_time":{"buckets":[
			{"key":1704067200000,"key_as_string":"2024-01-01","doc_count":2},
			{"key":1704153600000,"key_as_string":"2024-01-02","doc_count":1}]}}}`))

	desc, _ := query.NewBuilder("news", 10).TimeHistogram()
	res, err := d.Execute(context.Background(), desc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Buckets) != 2 || res.Buckets[0].Key != "2024-01-01" || res.Buckets[1].DocCount != 1 {
		t.Errorf("buckets = %+v", res.Buckets)
	}
}

func TestDriver_MissingAggregationIsQueryError(t *testing.T) {
	d, _ := newTestServer(t, respond(http.StatusOK, `{"hits":{"total":{"value":0},"hits":[]}}`))

	desc, _ := query.NewBuilder("news", 10).TopGeoreferences()
	_, err := d.Execute(context.Background(), desc)
	if !errors.Is(err, domain.ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
}

func TestDriver_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, domain.ErrQuery},
		{"missing index", http.StatusNotFound, domain.ErrQuery},
		{"request timeout", http.StatusRequestTimeout, domain.ErrTimeout},
		{"gateway timeout", http.StatusGatewayTimeout, domain.ErrTimeout},
		{"throttled", http.StatusTooManyRequests, domain.ErrUnavailable},
		{"server error", http.StatusInternalServerError, domain.ErrUnavailable},
		{"unavailable", http.StatusServiceUnavailable, domain.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestServer(t, respond(tt.status,
				`{"error":{"type":"some_exception","reason":"boom"},"status":`+strconv.Itoa(tt.status)+`}`))

			desc, _ := query.NewBuilder("news", 10).FullText("oil", "", "")
			_, err := d.Execute(context.Background(), desc)
			if !errors.Is(err, tt.want) {
				t.Fatalf("status %d: expected %v, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestDriver_ErrorReasonInMessage(t *testing.T) {
	d, _ := newTestServer(t, respond(http.StatusBadRequest,
		`{"error":{"type":"parsing_exception","reason":"unknown query [foo]"},"status":400}`))

	desc, _ := query.NewBuilder("news", 10).FullText("oil", "", "")
	_, err := d.Execute(context.Background(), desc)
	if err == nil || !strings.Contains(err.Error(), "parsing_exception: unknown query [foo]") {
		t.Fatalf("error = %v", err)
	}
}

func TestDriver_ConnectionRefused(t *testing.T) {
	d, srv := newTestServer(t, respond(http.StatusOK, `{}`))
	srv.Close()

	desc, _ := query.NewBuilder("news", 10).FullText("oil", "", "")
	_, err := d.Execute(context.Background(), desc)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := d.Ping(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("Ping: expected ErrUnavailable, got %v", err)
	}
}

func TestDriver_Ping(t *testing.T) {
	d, _ := newTestServer(t, respond(http.StatusOK, `{}`))
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if d.Name() != "elasticsearch" {
		t.Errorf("Name = %q", d.Name())
	}
}

func TestNewDriver_RequiresAddrs(t *testing.T) {
	if _, err := NewDriver(Config{}); err == nil {
		t.Fatal("expected error without addrs")
	}
}

func TestBucketKey(t *testing.T) {
	tests := []struct {
		in   bucket
		want string
	}{
		{bucket{Key: "Madrid"}, "Madrid"},
		{bucket{Key: float64(3)}, "3"},
		{bucket{Key: float64(1), KeyAsString: "2024-01-01"}, "2024-01-01"},
		{bucket{}, ""},
	}
	for _, tt := range tests {
		if got := bucketKey(tt.in); got != tt.want {
			t.Errorf("bucketKey(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
