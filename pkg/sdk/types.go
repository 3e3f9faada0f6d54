package newsdex

import "github.com/kailas-cloud/newsdex/internal/domain"

type (
	// Article is an indexable news document.
	Article = domain.Article
	// SearchResult is one full-text hit.
	SearchResult = domain.SearchResult
	// GeoBucket is a place with its document count.
	GeoBucket = domain.GeoBucket
	// TimeBucket is a day with its document count.
	TimeBucket = domain.TimeBucket
)
