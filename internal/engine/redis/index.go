package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
)

// DefaultPrefix is the key prefix of article hashes.
const DefaultPrefix = "article:"

// tagSeparator joins list fields in a hash. A place name cannot contain it.
const tagSeparator = ","

// EnsureIndex creates the article index over hashes under prefix. An existing index is left untouched.
func (d *Driver) EnsureIndex(ctx context.Context, index, prefix string) error {
	if index == "" {
		return fmt.Errorf("index name is required")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}

	args := createArgs(index, prefix)
	cmd := d.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := d.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return wrap(engine.OpIndex, err)
	}
	return nil
}

func createArgs(index, prefix string) []string {
	return []string{
		index, "ON", "HASH",
		"PREFIX", "1", prefix,
		"SCHEMA",
		domain.FieldTitle, "TEXT",
		domain.FieldContent, "TEXT",
		domain.FieldTemporalExpressions, "TEXT",
		domain.FieldGeoreferences, "AS", attrGeoName, "TEXT",
		domain.FieldGeoreferences, "AS", attrGeoTag, "TAG", "SEPARATOR", tagSeparator,
		domain.FieldDate, "NUMERIC", "SORTABLE",
	}
}

// Load stores articles as hashes in a single DoMulti round-trip. Articles
// without an ID get a random one. Returns the keys written.
func (d *Driver) Load(ctx context.Context, prefix string, articles []domain.Article) ([]string, error) {
	if len(articles) == 0 {
		return nil, nil
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}

	keys := make([]string, len(articles))
	cmds := make([]rueidis.Completed, len(articles))
	for i, a := range articles {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		keys[i] = prefix + id

		cmd := d.client.B().Hset().Key(keys[i]).FieldValue()
		for k, v := range hashFields(a) {
			cmd = cmd.FieldValue(k, v)
		}
		cmds[i] = cmd.Build()
	}

	for i, res := range d.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return nil, wrap(engine.OpLoad, fmt.Errorf("key %s: %w", keys[i], err))
		}
	}
	return keys, nil
}

func hashFields(a domain.Article) map[string]string {
	fields := map[string]string{
		domain.FieldTitle:   a.Title,
		domain.FieldContent: a.Content,
	}
	if !a.Date.IsZero() {
		fields[domain.FieldDate] = strconv.FormatInt(a.Date.UTC().Unix(), 10)
	}
	if len(a.Georeferences) > 0 {
		fields[domain.FieldGeoreferences] = strings.Join(a.Georeferences, tagSeparator)
	}
	if len(a.TemporalExpressions) > 0 {
		fields[domain.FieldTemporalExpressions] = strings.Join(a.TemporalExpressions, tagSeparator)
	}
	return fields
}
