package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/chopain/yomikae-sub001/internal/analyze"
	"github.com/chopain/yomikae-sub001/internal/article"
	"github.com/chopain/yomikae-sub001/internal/config"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
	"github.com/chopain/yomikae-sub001/internal/ops"
)

// maxStdinBytes caps piped scan text. The scanner enforces its own rune
// count limit; this only bounds the read itself.
const maxStdinBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, store *history.Store, analyzer *analyze.Analyzer, fetcher *article.Fetcher, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "yomikae",
		Usage:   "Personal kanji lookup history",
		Version: Version,
		Commands: []*cli.Command{
			lookupCmd(db, store),
			searchCmd(db),
			scanCmd(db, store, analyzer, fetcher),
			recentCmd(store),
			listCmd(store),
			filterCmd(store),
			statsCmd(store),
			removeCmd(store),
			containsCmd(store),
			clearCmd(store),
			exportCmd(store, cfg),
			importCmd(store, cfg),
			importDictCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// lookupCmd creates the lookup command.
func lookupCmd(db *sql.DB, store *history.Store) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Look up a character and record it in the history",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-remember", Usage: "Resolve the character without recording it"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			// Join args so multi-word meaning queries work unquoted
			input := ops.LookupInput{Query: strings.Join(c.Args().Slice(), " ")}
			if c.Bool("no-remember") {
				remember := false
				input.Remember = &remember
			}

			output, err := ops.Lookup(c.Context, db, store, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the dictionary without touching the history",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results (default 10, max 50)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			input := ops.SearchInput{
				Query: strings.Join(c.Args().Slice(), " "),
				Limit: c.Int("limit"),
			}

			output, err := ops.Search(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// scanCmd creates the scan command.
func scanCmd(db *sql.DB, store *history.Store, analyzer *analyze.Analyzer, fetcher *article.Fetcher) *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Extract the kanji from text or a fetched article (reads text from stdin when piped)",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Fetch and scan an article instead of inline text"},
			&cli.BoolFlag{Name: "remember", Aliases: []string{"r"}, Usage: "Record every found character in the history"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ScanInput{
				URL:      c.String("url"),
				Remember: c.Bool("remember"),
			}

			if input.URL == "" {
				if c.NArg() > 0 {
					input.Text = strings.Join(c.Args().Slice(), " ")
				} else if stdinHasData() {
					text, err := readStdin(maxStdinBytes)
					if err != nil {
						return outputError(errors.NewInvalidRequest(err.Error()))
					}
					input.Text = text
				}
			}

			output, err := ops.Scan(c.Context, db, store, analyzer, fetcher, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// recentCmd creates the recent command.
func recentCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Show the most recently looked-up characters",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Number of entries to return (default 10)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.RecentInput{}
			if c.IsSet("limit") {
				limit := c.Int("limit")
				input.Limit = &limit
			}

			output, err := ops.Recent(store, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Show the full lookup history, most recent first",
		Action: func(_ *cli.Context) error {
			output, err := ops.List(store)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// filterCmd creates the filter command.
func filterCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Filter the history by false-friend status or JLPT level",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "false-friends", Usage: "Only characters whose Japanese meaning diverges from the Chinese"},
			&cli.IntFlag{Name: "jlpt", Usage: "Only characters at this JLPT level (1-5)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FilterInput{
				FalseFriendsOnly: c.Bool("false-friends"),
			}
			if c.IsSet("jlpt") {
				level := c.Int("jlpt")
				input.JLPTLevel = &level
			}

			output, err := ops.Filter(store, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarize the lookup history",
		Action: func(_ *cli.Context) error {
			output, err := ops.Stats(store)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// removeCmd creates the remove command.
func removeCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove one character from the history",
		ArgsUsage: "<id-or-literal>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("character id or literal is required"))
			}

			id, literal := characterArg(c.Args().First())
			output, err := ops.Remove(store, ops.RemoveInput{ID: id, Literal: literal})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// containsCmd creates the contains command.
func containsCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:      "contains",
		Usage:     "Check whether a character is in the history",
		ArgsUsage: "<id-or-literal>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("character id or literal is required"))
			}

			id, literal := characterArg(c.Args().First())
			output, err := ops.Contains(store, ops.ContainsInput{ID: id, Literal: literal})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Empty the lookup history",
		Action: func(_ *cli.Context) error {
			output, err := ops.Clear(store)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(store *history.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the history to a JSON snapshot file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Output file (default: ~/.yomikae/exports/history-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(store, cfg, ops.ExportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(store *history.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Replace the history with a JSON snapshot file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Snapshot file to import (.json)", Required: true},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(store, cfg, ops.ImportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importDictCmd creates the import-dict command.
func importDictCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "import-dict",
		Usage: "Load a character list JSON file into the dictionary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Character list file (.json)", Required: true},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ImportDict(db, ops.ImportDictInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
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
	var yErr *errors.YomikaeError
	if stderrors.As(err, &yErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", yErr.Code, yErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin, erroring past maxBytes.
func readStdin(maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("stdin input exceeds %d bytes", maxBytes)
	}
	return strings.TrimSpace(string(data)), nil
}

// characterArg classifies a positional argument as a character id or a
// literal. Ids are ASCII ("u6c34"), so anything containing kanji is a
// literal; the two forms never collide.
func characterArg(arg string) (id, literal string) {
	if analyze.ContainsKanji(arg) {
		return "", arg
	}
	return arg, ""
}
