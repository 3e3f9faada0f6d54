package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/newsdex/internal/domain"
	newsdex "github.com/kailas-cloud/newsdex/pkg/sdk"
)

// seedArticle is the on-disk form of an article. Date accepts yyyy-MM-dd or RFC 3339.
type seedArticle struct {
	ID                  string   `json:"id,omitempty"`
	Title               string   `json:"Title"`
	Content             string   `json:"Content"`
	Date                string   `json:"Date"`
	Georeferences       []string `json:"Georeferences"`
	TemporalExpressions []string `json:"TemporalExpressions"`
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Load articles from a JSON array file (redis and bleve only)",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Articles per write",
				Value: 500,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("seed expects exactly one FILE argument")
			}
			articles, err := readArticles(cmd.Args().First())
			if err != nil {
				return err
			}

			client, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			n, err := seed(ctx, client, articles, cmd.Int("batch-size"))
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Loaded %d articles into %s\n", n, client.Driver())
			return nil
		},
	}
}

func seed(ctx context.Context, client *newsdex.Client, articles []newsdex.Article, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = len(articles)
	}
	loaded := 0
	for start := 0; start < len(articles); start += batchSize {
		end := min(start+batchSize, len(articles))
		ids, err := client.Load(ctx, articles[start:end])
		if err != nil {
			return loaded, fmt.Errorf("loading articles %d-%d: %w", start, end-1, err)
		}
		loaded += len(ids)
	}
	return loaded, nil
}

func readArticles(path string) ([]newsdex.Article, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw []seedArticle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	articles := make([]newsdex.Article, 0, len(raw))
	for i, r := range raw {
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
		articles = append(articles, newsdex.Article{
			ID:                  r.ID,
			Title:               r.Title,
			Content:             r.Content,
			Date:                date,
			Georeferences:       r.Georeferences,
			TemporalExpressions: r.TemporalExpressions,
		})
	}
	return articles, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(domain.DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
