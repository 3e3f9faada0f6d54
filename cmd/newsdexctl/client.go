package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	newsdex "github.com/kailas-cloud/newsdex/pkg/sdk"
)

const defaultTimeout = 5 * time.Second

// connect builds an SDK client from the root flags.
func connect(ctx context.Context, cmd *cli.Command) (*newsdex.Client, error) {
	opts := []newsdex.Option{
		newsdex.WithIndex(cmd.String("index")),
		newsdex.WithTimeout(cmd.Duration("timeout")),
	}

	addrs := cmd.StringSlice("addr")
	switch driver := cmd.String("driver"); driver {
	case "elasticsearch":
		if len(addrs) == 0 {
			addrs = []string{"http://localhost:9200"}
		}
		opts = append(opts, newsdex.WithElasticsearch(addrs...))
	case "redis":
		if len(addrs) == 0 {
			addrs = []string{"localhost:6379"}
		}
		opts = append(opts, newsdex.WithRedis(addrs[0], ""))
	case "bleve":
		opts = append(opts, newsdex.WithBleve(cmd.String("path")))
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}

	if user, pass := cmd.String("username"), cmd.String("password"); user != "" || pass != "" {
		opts = append(opts, newsdex.WithBasicAuth(user, pass))
	}
	if cmd.Bool("debug") {
		logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, newsdex.WithLogger(logger))
	}

	client, err := newsdex.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	return client, nil
}

func out(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

// printJSON writes v indented when --json is set and reports whether it did.
func printJSON(cmd *cli.Command, v any) (bool, error) {
	if !cmd.Bool("json") {
		return false, nil
	}
	enc := json.NewEncoder(out(cmd))
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return true, fmt.Errorf("encoding output: %w", err)
	}
	return true, nil
}
