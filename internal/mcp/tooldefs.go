package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are written for the LLM on the other end of
// the wire: they say when to reach for a tool, not just what it returns.

var lookupToolDef = mcp.NewTool("character_lookup",
	mcp.WithDescription(
		"Look up a kanji character and record it in the lookup history. "+
			"The query may be a literal (水), a character id (u6c34), or an English "+
			"meaning or reading to search for. Set remember:false to resolve a "+
			"character without recording it.",
	),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Character literal, character id, or meaning/reading search term"),
	),
	mcp.WithBoolean("remember",
		mcp.Description("Record the resolved character in the lookup history (default: true)"),
	),
)

var searchToolDef = mcp.NewTool("character_search",
	mcp.WithDescription(
		"Search the character database by meaning, reading, or pinyin. "+
			"Returns matching characters without touching the lookup history. "+
			"Use character_lookup instead when the lookup should be remembered.",
	),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Meaning, reading, or pinyin to search for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Max results (default: 10, max: 50)"),
	),
)

var scanToolDef = mcp.NewTool("text_scan",
	mcp.WithDescription(
		"Extract kanji from Japanese text or a web article and resolve each "+
			"against the character database. Provide exactly one of text or url. "+
			"With remember:true every resolved character is recorded in the "+
			"lookup history.",
	),
	mcp.WithString("text",
		mcp.Description("Japanese text to scan"),
	),
	mcp.WithString("url",
		mcp.Description("URL of an article to fetch and scan"),
	),
	mcp.WithBoolean("remember",
		mcp.Description("Record every resolved character in the lookup history (default: false)"),
	),
)

var recentToolDef = mcp.NewTool("history_recent",
	mcp.WithDescription(
		"Return the most recently looked-up characters, newest first.",
	),
	mcp.WithNumber("limit",
		mcp.Description("Max entries to return (default: 10)"),
	),
)

var listToolDef = mcp.NewTool("history_list",
	mcp.WithDescription(
		"Return the full lookup history, newest first, together with the "+
			"current size and the fixed capacity.",
	),
)

var filterToolDef = mcp.NewTool("history_filter",
	mcp.WithDescription(
		"Return the lookup-history entries matching the given criteria, "+
			"newest first. Criteria combine with AND; with no criteria every "+
			"entry matches.",
	),
	mcp.WithBoolean("false_friends_only",
		mcp.Description("Only characters whose meaning diverges between Chinese and Japanese"),
	),
	mcp.WithNumber("jlpt_level",
		mcp.Description("Only characters at this JLPT level (1-5); unclassified characters never match"),
	),
)

var statsToolDef = mcp.NewTool("history_stats",
	mcp.WithDescription(
		"Summarize the lookup history: total and unique lookups, the most "+
			"recent character, the false-friend count, and the JLPT level "+
			"distribution.",
	),
)

var removeToolDef = mcp.NewTool("history_remove",
	mcp.WithDescription(
		"Remove one character from the lookup history. Address it by id or by "+
			"literal (exactly one). Removing an absent character is not an error.",
	),
	mcp.WithString("id",
		mcp.Description("Character id (e.g. u6c34)"),
	),
	mcp.WithString("literal",
		mcp.Description("Character literal (e.g. 水)"),
	),
)

var containsToolDef = mcp.NewTool("history_contains",
	mcp.WithDescription(
		"Check whether a character is currently in the lookup history. "+
			"Address it by id or by literal (exactly one).",
	),
	mcp.WithString("id",
		mcp.Description("Character id (e.g. u6c34)"),
	),
	mcp.WithString("literal",
		mcp.Description("Character literal (e.g. 水)"),
	),
)

var clearToolDef = mcp.NewTool("history_clear",
	mcp.WithDescription(
		"Delete every entry from the lookup history. Returns the number of "+
			"entries removed.",
	),
)

var exportToolDef = mcp.NewTool("history_export",
	mcp.WithDescription(
		"Write the lookup history to a JSON snapshot file. Without a path the "+
			"snapshot goes to the default exports directory. Paths must end in "+
			".json and stay inside the allowed directories.",
	),
	mcp.WithString("path",
		mcp.Description("Destination file path (optional; default: ~/.yomikae/exports/history-<timestamp>.json)"),
	),
)

var importToolDef = mcp.NewTool("history_import",
	mcp.WithDescription(
		"Merge a JSON snapshot file into the lookup history. Imported entries "+
			"take the most-recent positions; duplicates are deduplicated by id "+
			"and capacity is enforced.",
	),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Snapshot file to import"),
	),
)
