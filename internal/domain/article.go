package domain

import "time"

// Index field names shared by the query builder, drivers and projection.
const (
	FieldTitle               = "Title"
	FieldContent             = "Content"
	FieldDate                = "Date"
	FieldGeoreferences       = "Georeferences"
	FieldGeoreferenceName    = "Georeferences.name"
	FieldGeoreferenceKeyword = "Georeferences.keyword"
	FieldTemporalExpressions = "TemporalExpressions"
)

// Result caps.
const (
	// MaxBuckets caps both aggregation views.
	MaxBuckets = 10
	// MaxSuggestions caps autocomplete output.
	MaxSuggestions = 10
	// MinPrefixLength is the shortest prefix sent to the engine for autocomplete.
	MinPrefixLength = 3
	// DayLayout is the Go layout of the yyyy-MM-dd bucket keys.
	DayLayout = "2006-01-02"
)

// Article is the read-only view of an indexed news document.
type Article struct {
	ID                  string    `json:"-"`
	Title               string    `json:"Title"`
	Content             string    `json:"Content"`
	Date                time.Time `json:"Date"`
	Georeferences       []string  `json:"Georeferences"`
	TemporalExpressions []string  `json:"TemporalExpressions"`
}

// Day returns the article's calendar date in UTC as yyyy-MM-dd.
func (a *Article) Day() string {
	return a.Date.UTC().Format(DayLayout)
}

// SearchResult is the projection of an Article returned by full-text search.
type SearchResult struct {
	Title         string   `json:"Title"`
	Content       string   `json:"Content"`
	Date          string   `json:"Date"`
	Georeferences []string `json:"Georeferences"`
}

// GeoBucket is one place name with its document count.
type GeoBucket struct {
	Key      string `json:"key"`
	DocCount int64  `json:"doc_count"`
}

// TimeBucket is one calendar day with its document count.
type TimeBucket struct {
	Date     string `json:"date"`
	DocCount int64  `json:"doc_count"`
}
