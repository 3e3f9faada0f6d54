package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "newsdexctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "newsdexctl",
		Usage: "Query and seed a newsdex article index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "driver",
				Usage:   "Engine backend: elasticsearch, redis or bleve",
				Value:   "bleve",
				Sources: cli.EnvVars("NEWSDEX_DRIVER"),
			},
			&cli.StringSliceFlag{
				Name:    "addr",
				Usage:   "Engine address (repeatable)",
				Sources: cli.EnvVars("NEWSDEX_ADDR"),
			},
			&cli.StringFlag{
				Name:    "username",
				Usage:   "Engine username",
				Sources: cli.EnvVars("NEWSDEX_USERNAME"),
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "Engine password",
				Sources: cli.EnvVars("NEWSDEX_PASSWORD"),
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "Index name",
				Value: "news",
			},
			&cli.StringFlag{
				Name:    "path",
				Usage:   "Bleve index directory",
				Value:   "data/news.bleve",
				Sources: cli.EnvVars("NEWSDEX_BLEVE_PATH"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request engine timeout",
				Value: defaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			seedCommand(),
			searchCommand(),
			suggestCommand(),
			geoCommand(),
			histogramCommand(),
			versionCommand(),
		},
	}
}
