package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	newsdex "github.com/kailas-cloud/newsdex/pkg/sdk"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Full-text search over titles and content",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "when",
				Usage: "Require a matching temporal expression",
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "Require a matching georeference",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			q := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(q) == "" {
				return errors.New("search expects a QUERY argument")
			}

			client, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var opts []newsdex.SearchOption
			if v := cmd.String("when"); v != "" {
				opts = append(opts, newsdex.During(v))
			}
			if v := cmd.String("where"); v != "" {
				opts = append(opts, newsdex.InPlace(v))
			}

			results, err := client.Search(ctx, q, opts...)
			if err != nil {
				return err
			}
			if done, err := printJSON(cmd, results); done {
				return err
			}

			w := out(cmd)
			if len(results) == 0 {
				fmt.Fprintln(w, "No results found")
				return nil
			}
			for i, r := range results {
				fmt.Fprintf(w, "%d. %s (%s)", i+1, r.Title, r.Date)
				if len(r.Georeferences) > 0 {
					fmt.Fprintf(w, " [%s]", strings.Join(r.Georeferences, ", "))
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Complete a title prefix",
		ArgsUsage: "PREFIX",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			titles, err := client.Suggest(ctx, strings.Join(cmd.Args().Slice(), " "))
			if err != nil {
				return err
			}
			if done, err := printJSON(cmd, titles); done {
				return err
			}
			for _, t := range titles {
				fmt.Fprintln(out(cmd), t)
			}
			return nil
		},
	}
}

func geoCommand() *cli.Command {
	return &cli.Command{
		Name:  "geo",
		Usage: "Show the most mentioned places",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			buckets, err := client.TopGeoreferences(ctx)
			if err != nil {
				return err
			}
			if done, err := printJSON(cmd, buckets); done {
				return err
			}
			for _, b := range buckets {
				fmt.Fprintf(out(cmd), "%-30s %d\n", b.Key, b.DocCount)
			}
			return nil
		},
	}
}

func histogramCommand() *cli.Command {
	return &cli.Command{
		Name:  "histogram",
		Usage: "Show articles per day",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			buckets, err := client.Distribution(ctx)
			if err != nil {
				return err
			}
			if done, err := printJSON(cmd, buckets); done {
				return err
			}
			for _, b := range buckets {
				fmt.Fprintf(out(cmd), "%s %d\n", b.Date, b.DocCount)
			}
			return nil
		},
	}
}
