package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chopain/yomikae-sub001/internal/analyze"
	"github.com/chopain/yomikae-sub001/internal/article"
	"github.com/chopain/yomikae-sub001/internal/blob"
	"github.com/chopain/yomikae-sub001/internal/config"
	"github.com/chopain/yomikae-sub001/internal/history"
	"github.com/chopain/yomikae-sub001/internal/kanjidb"
	"github.com/chopain/yomikae-sub001/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"lookup": true, "search": true, "scan": true,
	"recent": true, "list": true, "filter": true, "stats": true,
	"remove": true, "contains": true, "clear": true,
	"export": true, "import": true, "import-dict": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
  __   __  ___   __  __  ___  _  __   _    ___
  \ \ / / / _ \ |  \/  ||_ _|| |/ /  /_\  | __|
   \ V / | (_) || |\/| | | | | ' <  / _ \ | _|
    |_|   \___/ |_|  |_||___||_|\_\/_/ \_\|___|

  Personal kanji lookup history

  Usage: yomikae <command> [options]
         yomikae --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any initialization (no deps needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".yomikae")

	database, err := kanjidb.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize dictionary database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	kanjidb.ConfigurePool(database, cfg)

	if _, err := kanjidb.EnsureSeeded(database); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to seed dictionary: %v\n", err)
		os.Exit(1)
	}

	// History snapshot lives next to the database under the base dir.
	store := history.New(blob.NewFileStore(baseDir))

	analyzer, err := analyze.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load tokenizer: %v\n", err)
		os.Exit(1)
	}

	fetcher := article.NewFetcher(cfg.FetchMaxBytes)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(database, store, analyzer, fetcher, cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'yomikae --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(database, store, analyzer, fetcher, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
