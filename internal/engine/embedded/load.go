package embedded

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
)

// Load indexes articles in one batch. Articles without an ID get a random one.
// Returns the IDs written.
func (d *Driver) Load(ctx context.Context, articles []domain.Article) ([]string, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	ids := make([]string, len(articles))
	batch := d.index.NewBatch()
	for i, a := range articles {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids[i] = id

		doc, err := document(a)
		if err != nil {
			return nil, engine.QueryError(engine.OpLoad, fmt.Errorf("article %s: %w", id, err))
		}
		if err := batch.Index(id, doc); err != nil {
			return nil, engine.QueryError(engine.OpLoad, fmt.Errorf("batch index %s: %w", id, err))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.index.Batch(batch); err != nil {
		return nil, engine.Unavailable(engine.OpLoad, fmt.Errorf("commit batch: %w", err))
	}
	return ids, nil
}

// document builds the indexed form of a; the stored copy mirrors what an
// external engine would return as the document source.
func document(a domain.Article) (map[string]any, error) {
	src := map[string]any{
		domain.FieldTitle:   a.Title,
		domain.FieldContent: a.Content,
	}
	if !a.Date.IsZero() {
		src[domain.FieldDate] = a.Date.UTC().Format(time.RFC3339)
	}
	if len(a.Georeferences) > 0 {
		src[domain.FieldGeoreferences] = a.Georeferences
	}
	if len(a.TemporalExpressions) > 0 {
		src[domain.FieldTemporalExpressions] = a.TemporalExpressions
	}

	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{
		domain.FieldTitle:   a.Title,
		domain.FieldContent: a.Content,
		fieldRaw:            string(raw),
	}
	if len(a.Georeferences) > 0 {
		doc[domain.FieldGeoreferences] = a.Georeferences
	}
	if len(a.TemporalExpressions) > 0 {
		doc[domain.FieldTemporalExpressions] = a.TemporalExpressions
	}
	if !a.Date.IsZero() {
		doc[fieldDay] = a.Day()
	}
	return doc, nil
}
