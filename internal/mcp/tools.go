package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the MCP server.

var ingestToolDef = mcp.NewTool("deck_ingest",
	mcp.WithDescription("Ingest one or more CSV files into the flashcard deck. Each file is appended as a separator titled with the file name followed by its cards. Files are read concurrently; failures are reported per file without affecting the others."),
	mcp.WithArray("files",
		mcp.Required(),
		mcp.Description("Paths of CSV files to ingest, each row being prompt,response"),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var ingestURLToolDef = mcp.NewTool("deck_ingest_url",
	mcp.WithDescription("Fetch a CSV document over HTTP and append its cards to the deck. The separator title is the final path segment of the URL."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("HTTP or HTTPS URL of the CSV document"),
	),
)

var listToolDef = mcp.NewTool("deck_list",
	mcp.WithDescription("List deck entries in study order with pagination."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 20, max 200)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of entries to skip"),
	),
)

var statsToolDef = mcp.NewTool("deck_stats",
	mcp.WithDescription("Return counts of separators, cards, and total entries in the deck."),
)

var exportToolDef = mcp.NewTool("deck_export",
	mcp.WithDescription("Export the deck to a file. CSV format writes one row per entry; HTML format renders a printable study sheet. Defaults to flashcards_export.csv in the exports directory."),
	mcp.WithString("path",
		mcp.Description("Destination file path (optional, must match the format extension)"),
	),
	mcp.WithString("format",
		mcp.Description("Export format: csv or html (default csv)"),
		mcp.Enum("csv", "html"),
	),
)

var clearToolDef = mcp.NewTool("deck_clear",
	mcp.WithDescription("Delete every entry in the deck and remove the snapshot. Destructive; requires confirm=true."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true to proceed"),
	),
)
