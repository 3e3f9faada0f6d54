package embedded

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/newsdex/internal/domain"
)

const (
	// fieldDay holds the yyyy-MM-dd UTC day of the article date.
	fieldDay = "Day"
	// fieldRaw stores the original document as JSON; it is not indexed.
	fieldRaw = "Raw"
)

func newIndexMapping() mapping.IndexMapping {
	text := func() *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = false
		fm.IncludeInAll = false
		return fm
	}

	geoName := text()
	geoName.Name = domain.FieldGeoreferenceName
	geoKeyword := bleve.NewKeywordFieldMapping()
	geoKeyword.Name = domain.FieldGeoreferenceKeyword
	geoKeyword.Store = false
	geoKeyword.IncludeInAll = false

	day := bleve.NewKeywordFieldMapping()
	day.Store = false
	day.IncludeInAll = false

	raw := bleve.NewTextFieldMapping()
	raw.Index = false
	raw.Store = true
	raw.IncludeInAll = false
	raw.IncludeTermVectors = false

	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt(domain.FieldTitle, text())
	doc.AddFieldMappingsAt(domain.FieldContent, text())
	doc.AddFieldMappingsAt(domain.FieldTemporalExpressions, text())
	doc.AddFieldMappingsAt(domain.FieldGeoreferences, geoName, geoKeyword)
	doc.AddFieldMappingsAt(fieldDay, day)
	doc.AddFieldMappingsAt(fieldRaw, raw)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = standard.Name
	return im
}

// indexField maps a document field path to the bleve field that serves it.
func indexField(field string) string {
	if field == domain.FieldDate {
		return fieldDay
	}
	return field
}
