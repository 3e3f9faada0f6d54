package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/newsdex/internal/domain"
)

// Aggregation names used in descriptors and engine responses.
const (
	AggTopGeoreferences  = "top_georeferences"
	AggDocumentsOverTime = "documents_over_time"
)

// Boosts applied to the mandatory full-text clause.
const (
	TitleBoost   = 2.0
	ContentBoost = 1.0
)

// Autocomplete tuning.
const (
	autocompleteMaxExpansions = 10
)

// resultFields is the projection requested for full-text hits.
var resultFields = []string{
	domain.FieldTitle,
	domain.FieldContent,
	domain.FieldDate,
	domain.FieldGeoreferences,
}

// Builder produces descriptors against a single, process-wide index.
type Builder struct {
	index      string
	maxResults int
}

// NewBuilder creates a Builder. maxResults <= 0 selects DefaultMaxResults;
// larger values are clamped to MaxResults.
func NewBuilder(index string, maxResults int) *Builder {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResults {
		maxResults = MaxResults
	}
	return &Builder{index: index, maxResults: maxResults}
}

// Index returns the index every descriptor targets.
func (b *Builder) Index() string { return b.index }

// FullText builds a ranked query: query must match Title (x2) or Content (x1);
// temporalExpression and georeference, when non-empty, add optional scoring clauses
// of which at least one must then match.
func (b *Builder) FullText(query, temporalExpression, georeference string) (*FullText, error) {
	q := &FullText{
		Index: b.index,
		Query: strings.TrimSpace(query),
		Fields: []FieldBoost{
			{Field: domain.FieldTitle, Boost: TitleBoost},
			{Field: domain.FieldContent, Boost: ContentBoost},
		},
		Source: append([]string(nil), resultFields...),
		Size:   b.maxResults,
	}

	if v := strings.TrimSpace(temporalExpression); v != "" {
		q.Should = append(q.Should, FieldMatch{Field: domain.FieldTemporalExpressions, Value: v})
	}
	if v := strings.TrimSpace(georeference); v != "" {
		q.Should = append(q.Should, FieldMatch{Field: domain.FieldGeoreferenceName, Value: v})
	}
	if len(q.Should) > 0 {
		q.MinimumShouldMatch = 1
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Autocomplete builds a title suggestion query. Prefixes shorter than
// domain.MinPrefixLength runes as typed, or made only of whitespace, fail with
// domain.ErrPrefixTooShort; callers answer those with an empty list without
// contacting the engine.
func (b *Builder) Autocomplete(prefix string) (*Autocomplete, error) {
	phrase := strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < domain.MinPrefixLength || phrase == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrPrefixTooShort)
	}
	lower := cases.Lower(language.Und).String(phrase)

	q := &Autocomplete{
		Index: b.index,
		Field: domain.FieldTitle,
		Fuzzy: Fuzzy{
			Value:         lower,
			Fuzziness:     FuzzinessAuto,
			PrefixLength:  0,
			MaxExpansions: autocompleteMaxExpansions,
		},
		Phrase:             phrase,
		Contains:           "*" + lower + "*",
		MinimumShouldMatch: 1,
		Source:             []string{domain.FieldTitle},
		Size:               domain.MaxSuggestions,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// TopGeoreferences builds the top-10 place name aggregation.
func (b *Builder) TopGeoreferences() (*TopTerms, error) {
	q := &TopTerms{
		Index: b.index,
		Name:  AggTopGeoreferences,
		Field: domain.FieldGeoreferenceKeyword,
		Size:  domain.MaxBuckets,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// TimeHistogram builds the daily document count aggregation.
func (b *Builder) TimeHistogram() (*DateHistogram, error) {
	q := &DateHistogram{
		Index:       b.index,
		Name:        AggDocumentsOverTime,
		Field:       domain.FieldDate,
		Interval:    IntervalDay,
		Format:      FormatDay,
		MinDocCount: 1,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
