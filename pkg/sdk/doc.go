// Package newsdex provides a Go client for the newsdex article index,
// backed by Elasticsearch, Redis with the search module, or an embedded
// bleve index.
//
//	client, _ := newsdex.New(ctx, newsdex.WithElasticsearch("http://localhost:9200"))
//	defer client.Close()
//
//	results, _ := client.Search(ctx, "oil prices", newsdex.InPlace("Texas"))
//	titles, _ := client.Suggest(ctx, "oil")
//	places, _ := client.TopGeoreferences(ctx)
//	days, _ := client.Distribution(ctx)
//
// Redis and bleve backends also accept articles:
//
//	client, _ := newsdex.New(ctx, newsdex.WithBleve("news.bleve"))
//	_, _ = client.Load(ctx, articles)
package newsdex
