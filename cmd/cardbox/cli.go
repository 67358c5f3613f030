package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"cardbox/internal/config"
	"cardbox/internal/errors"
	"cardbox/internal/ops"
	"cardbox/internal/store"
	"cardbox/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "cardbox",
		Usage:   "CSV flashcard deck store",
		Version: Version,
		Commands: []*cli.Command{
			ingestCmd(st),
			fetchCmd(st),
			listCmd(st),
			statsCmd(st),
			exportCmd(st, cfg),
			clearCmd(st),
			serveCmd(st, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// ingestCmd creates the ingest command.
func ingestCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "Ingest one or more CSV files into the deck",
		ArgsUsage: "<file> [file...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("at least one file is required"))
			}

			sources := make([]ops.Source, 0, c.NArg())
			for _, path := range c.Args().Slice() {
				sources = append(sources, ops.FileSource(path))
			}

			output, err := ops.Ingest(c.Context, st, ops.IngestInput{Sources: sources})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a CSV document from a URL into the deck",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("exactly one url is required"))
			}

			output, err := ops.IngestURL(c.Context, st, ops.IngestURLInput{URL: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List deck entries in study order",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(st, ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show deck counts",
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(st)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the deck to a delimited file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.cardbox/exports/flashcards_export.csv)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "Export format: csv|html"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(st, cfg, ops.ExportInput{
				Path:   c.String("path"),
				Format: ops.ExportFormat(c.String("format")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete all deck entries and the snapshot",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			var confirmer store.Confirmer = promptConfirmer{}
			if c.Bool("yes") {
				confirmer = store.ConfirmerFunc(func(string) bool { return true })
			}

			output, err := ops.Clear(st, confirmer)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the read-only deck viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 7327, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			return web.Run(st, cfg, Version, c.String("bind"), c.Int("port"))
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if boxErr, ok := err.(*errors.BoxError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", boxErr.Code, boxErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// promptConfirmer asks yes/no on the terminal before destructive operations.
type promptConfirmer struct{}

// Confirm implements store.Confirmer.
func (promptConfirmer) Confirm(message string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", message)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
