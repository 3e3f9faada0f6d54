// Package query translates search intents into engine-agnostic descriptors.
package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/newsdex/internal/domain"
)

// Intent names one of the four read intents. Used as a metrics label.
type Intent string

const (
	// IntentFullText is a ranked full-text query.
	IntentFullText Intent = "full_text"
	// IntentAutocomplete is a prefix autocomplete over titles.
	IntentAutocomplete Intent = "autocomplete"
	// IntentTopTerms is a term-frequency aggregation.
	IntentTopTerms Intent = "top_terms"
	// IntentDateHistogram is a fixed-interval date histogram.
	IntentDateHistogram Intent = "date_histogram"
)

// Limits enforced by Validate.
const (
	DefaultMaxResults = 10
	MaxResults        = 100
	FuzzinessAuto     = "AUTO"
	IntervalDay       = "1d"
	FormatDay         = "yyyy-MM-dd"
)

// Descriptor is a validated, engine-agnostic query. The set of implementations is closed.
type Descriptor interface {
	Intent() Intent
	IndexName() string
	Validate() error
	descriptor()
}

// FieldBoost is a field taking part in a multi-field match with its score multiplier.
type FieldBoost struct {
	Field string
	Boost float64
}

// FieldMatch is an optional match clause contributing to the score.
type FieldMatch struct {
	Field string
	Value string
}

// FullText requires Query to match one of Fields and scores optional Should clauses.
type FullText struct {
	Index              string
	Query              string
	Fields             []FieldBoost
	Should             []FieldMatch
	MinimumShouldMatch int
	Source             []string
	Size               int
}

// Fuzzy is an edit-distance tolerant term match.
type Fuzzy struct {
	Value         string
	Fuzziness     string
	PrefixLength  int
	MaxExpansions int
}

// Autocomplete matches Field by fuzzy term, exact phrase or substring; any one suffices.
type Autocomplete struct {
	Index              string
	Field              string
	Fuzzy              Fuzzy
	Phrase             string
	Contains           string
	MinimumShouldMatch int
	Source             []string
	Size               int
}

// TopTerms counts documents per distinct value of Field, returning the Size largest.
// Hits are never retrieved.
type TopTerms struct {
	Index string
	Name  string
	Field string
	Size  int
}

// DateHistogram counts documents per Interval of Field with keys rendered in Format.
// Hits are never retrieved.
type DateHistogram struct {
	Index       string
	Name        string
	Field       string
	Interval    string
	Format      string
	MinDocCount int
}

var (
	_ Descriptor = (*FullText)(nil)
	_ Descriptor = (*Autocomplete)(nil)
	_ Descriptor = (*TopTerms)(nil)
	_ Descriptor = (*DateHistogram)(nil)
)

func (*FullText) descriptor()      {}
func (*Autocomplete) descriptor()  {}
func (*TopTerms) descriptor()      {}
func (*DateHistogram) descriptor() {}

// Intent implements Descriptor.
func (*FullText) Intent() Intent { return IntentFullText }

// Intent implements Descriptor.
func (*Autocomplete) Intent() Intent { return IntentAutocomplete }

// Intent implements Descriptor.
func (*TopTerms) Intent() Intent { return IntentTopTerms }

// Intent implements Descriptor.
func (*DateHistogram) Intent() Intent { return IntentDateHistogram }

// IndexName implements Descriptor.
func (q *FullText) IndexName() string { return q.Index }

// IndexName implements Descriptor.
func (q *Autocomplete) IndexName() string { return q.Index }

// IndexName implements Descriptor.
func (q *TopTerms) IndexName() string { return q.Index }

// IndexName implements Descriptor.
func (q *DateHistogram) IndexName() string { return q.Index }

// Validate checks the full-text descriptor.
func (q *FullText) Validate() error {
	if q.Index == "" {
		return invalid("index name is required")
	}
	if strings.TrimSpace(q.Query) == "" {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMissingQuery)
	}
	if len(q.Fields) == 0 {
		return invalid("at least one match field is required")
	}
	for _, f := range q.Fields {
		if f.Field == "" || f.Boost <= 0 {
			return invalid("match field %q needs a name and a positive boost", f.Field)
		}
	}
	for _, m := range q.Should {
		if m.Field == "" || strings.TrimSpace(m.Value) == "" {
			return invalid("optional clause on %q has an empty value", m.Field)
		}
	}
	if q.MinimumShouldMatch < 0 || q.MinimumShouldMatch > len(q.Should) {
		return invalid("minimum_should_match %d out of range for %d clauses", q.MinimumShouldMatch, len(q.Should))
	}
	if q.Size <= 0 || q.Size > MaxResults {
		return invalid("size must be between 1 and %d, got %d", MaxResults, q.Size)
	}
	return nil
}

// Validate checks the autocomplete descriptor.
func (q *Autocomplete) Validate() error {
	if q.Index == "" {
		return invalid("index name is required")
	}
	if q.Field == "" {
		return invalid("field is required")
	}
	if strings.TrimSpace(q.Phrase) == "" {
		return invalid("phrase is required")
	}
	if q.Fuzzy.Value == "" || q.Contains == "" {
		return invalid("fuzzy and contains clauses are required")
	}
	if q.Fuzzy.MaxExpansions <= 0 {
		return invalid("max_expansions must be positive")
	}
	if q.MinimumShouldMatch != 1 {
		return invalid("minimum_should_match must be 1, got %d", q.MinimumShouldMatch)
	}
	if q.Size <= 0 || q.Size > domain.MaxSuggestions {
		return invalid("size must be between 1 and %d, got %d", domain.MaxSuggestions, q.Size)
	}
	return nil
}

// Validate checks the terms aggregation descriptor.
func (q *TopTerms) Validate() error {
	if q.Index == "" {
		return invalid("index name is required")
	}
	if q.Name == "" || q.Field == "" {
		return invalid("aggregation name and field are required")
	}
	if q.Size <= 0 || q.Size > domain.MaxBuckets {
		return invalid("bucket size must be between 1 and %d, got %d", domain.MaxBuckets, q.Size)
	}
	return nil
}

// Validate checks the date histogram descriptor.
func (q *DateHistogram) Validate() error {
	if q.Index == "" {
		return invalid("index name is required")
	}
	if q.Name == "" || q.Field == "" {
		return invalid("aggregation name and field are required")
	}
	if q.Interval != IntervalDay {
		return invalid("unsupported interval %q", q.Interval)
	}
	if q.Format == "" {
		return invalid("key format is required")
	}
	if q.MinDocCount < 0 {
		return invalid("min_doc_count must not be negative")
	}
	return nil
}

// EditDistance resolves the fuzziness of f to a concrete edit distance.
// AUTO follows the usual length bands: 0 up to 2 runes, 1 up to 5, 2 beyond.
func EditDistance(f Fuzzy) int {
	switch f.Fuzziness {
	case "0":
		return 0
	case "1":
		return 1
	case "2":
		return 2
	}
	n := utf8.RuneCountInString(f.Value)
	switch {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}
