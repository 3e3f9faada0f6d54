package embedded

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// maxFacetTerms bounds the terms counted per facet; top-N selection and
// ordering happen after counting.
const maxFacetTerms = 100000

// fullTextRequest matches the query on the boosted fields and, when optional clauses
// exist, requires MinimumShouldMatch of them.
func fullTextRequest(q *query.FullText) *bleve.SearchRequest {
	fields := make([]blevequery.Query, 0, len(q.Fields))
	for _, f := range q.Fields {
		m := bleve.NewMatchQuery(q.Query)
		m.SetField(f.Field)
		m.SetBoost(f.Boost)
		fields = append(fields, m)
	}

	b := bleve.NewBooleanQuery()
	b.AddMust(bleve.NewDisjunctionQuery(fields...))
	for _, s := range q.Should {
		m := bleve.NewMatchQuery(s.Value)
		m.SetField(indexField(s.Field))
		b.AddShould(m)
	}
	if len(q.Should) > 0 {
		b.SetMinShould(float64(q.MinimumShouldMatch))
	}

	req := bleve.NewSearchRequestOptions(b, q.Size, 0, false)
	req.Fields = []string{fieldRaw}
	req.SortBy([]string{"-_score"})
	return req
}

// autocompleteRequest ORs a fuzzy term, an exact phrase and a wildcard on the field.
func autocompleteRequest(q *query.Autocomplete) *bleve.SearchRequest {
	fuzzy := bleve.NewFuzzyQuery(q.Fuzzy.Value)
	fuzzy.SetField(q.Field)
	fuzzy.SetFuzziness(query.EditDistance(q.Fuzzy))
	fuzzy.SetPrefix(q.Fuzzy.PrefixLength)

	phrase := bleve.NewMatchPhraseQuery(q.Phrase)
	phrase.SetField(q.Field)

	contains := bleve.NewWildcardQuery(q.Contains)
	contains.SetField(q.Field)

	d := bleve.NewDisjunctionQuery(fuzzy, phrase, contains)
	d.SetMin(float64(q.MinimumShouldMatch))

	req := bleve.NewSearchRequestOptions(d, q.Size, 0, false)
	req.Fields = []string{fieldRaw}
	req.SortBy([]string{"-_score"})
	return req
}

func (d *Driver) search(ctx context.Context, op string, req *bleve.SearchRequest, source []string) (*engine.Result, error) {
	res, err := d.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, wrap(ctx, op, err)
	}

	out := &engine.Result{
		Total: int(res.Total),
		Hits:  make([]engine.Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		src, err := decodeRaw(h.Fields[fieldRaw], source)
		if err != nil {
			return nil, engine.QueryError(engine.OpDecode, fmt.Errorf("document %s: %w", h.ID, err))
		}
		out.Hits = append(out.Hits, engine.Hit{ID: h.ID, Score: h.Score, Source: src})
	}
	return out, nil
}

func (d *Driver) topTerms(ctx context.Context, q *query.TopTerms) (*engine.Result, error) {
	buckets, total, err := d.facet(ctx, indexField(q.Field))
	if err != nil {
		return nil, wrap(ctx, engine.OpAggregate, err)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].DocCount != buckets[j].DocCount {
			return buckets[i].DocCount > buckets[j].DocCount
		}
		return buckets[i].Key < buckets[j].Key
	})
	if len(buckets) > q.Size {
		buckets = buckets[:q.Size]
	}
	return &engine.Result{Total: total, Buckets: buckets}, nil
}

func (d *Driver) histogram(ctx context.Context, q *query.DateHistogram) (*engine.Result, error) {
	if q.Interval != query.IntervalDay || q.Format != query.FormatDay {
		return nil, engine.QueryError(engine.OpAggregate,
			fmt.Errorf("unsupported histogram %s/%s", q.Interval, q.Format))
	}
	buckets, total, err := d.facet(ctx, indexField(q.Field))
	if err != nil {
		return nil, wrap(ctx, engine.OpAggregate, err)
	}

	kept := buckets[:0]
	for _, b := range buckets {
		if b.DocCount >= int64(q.MinDocCount) {
			kept = append(kept, b)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })
	return &engine.Result{Total: total, Buckets: kept}, nil
}

// facet counts documents per term of field over the whole index.
func (d *Driver) facet(ctx context.Context, field string) ([]engine.Bucket, int, error) {
	const name = "terms"

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), 0, 0, false)
	req.AddFacet(name, bleve.NewFacetRequest(field, maxFacetTerms))

	res, err := d.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	fr, ok := res.Facets[name]
	if !ok || fr == nil {
		return []engine.Bucket{}, int(res.Total), nil
	}
	terms := fr.Terms.Terms()
	buckets := make([]engine.Bucket, 0, len(terms))
	for _, t := range terms {
		buckets = append(buckets, engine.Bucket{Key: t.Term, DocCount: int64(t.Count)})
	}
	return buckets, int(res.Total), nil
}

// decodeRaw parses the stored document and keeps only the requested fields.
func decodeRaw(v any, fields []string) (map[string]any, error) {
	raw, ok := v.(string)
	if !ok {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return doc, nil
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if val, ok := doc[f]; ok {
			out[f] = val
		}
	}
	return out, nil
}
