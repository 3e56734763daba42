package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chopain/yomikae-sub001/internal/analyze"
	"github.com/chopain/yomikae-sub001/internal/article"
	"github.com/chopain/yomikae-sub001/internal/config"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
	"github.com/chopain/yomikae-sub001/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db       *sql.DB
	store    *history.Store
	analyzer *analyze.Analyzer
	fetcher  *article.Fetcher
	cfg      *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, store *history.Store, analyzer *analyze.Analyzer, fetcher *article.Fetcher, cfg *config.Config) *Handlers {
	return &Handlers{db: db, store: store, analyzer: analyzer, fetcher: fetcher, cfg: cfg}
}

// Request types for each tool

// LookupRequest represents the arguments for character_lookup.
type LookupRequest struct {
	Query    string `json:"query"`
	Remember *bool  `json:"remember,omitempty"`
}

// SearchRequest represents the arguments for character_search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// ScanRequest represents the arguments for text_scan.
type ScanRequest struct {
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
	Remember bool   `json:"remember,omitempty"`
}

// RecentRequest represents the arguments for history_recent.
type RecentRequest struct {
	Limit *int `json:"limit,omitempty"`
}

// FilterRequest represents the arguments for history_filter.
type FilterRequest struct {
	FalseFriendsOnly bool `json:"false_friends_only,omitempty"`
	JLPTLevel        *int `json:"jlpt_level,omitempty"`
}

// RemoveRequest represents the arguments for history_remove.
type RemoveRequest struct {
	ID      string `json:"id,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// ContainsRequest represents the arguments for history_contains.
type ContainsRequest struct {
	ID      string `json:"id,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// ExportRequest represents the arguments for history_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for history_import.
type ImportRequest struct {
	Path string `json:"path"`
}

// Handler implementations

// HandleLookup handles the character_lookup tool call.
func (h *Handlers) HandleLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LookupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Lookup(ctx, h.db, h.store, ops.LookupInput{
		Query:    input.Query,
		Remember: input.Remember,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the character_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.db, ops.SearchInput{
		Query: input.Query,
		Limit: input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleScan handles the text_scan tool call.
func (h *Handlers) HandleScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScanRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Scan(ctx, h.db, h.store, h.analyzer, h.fetcher, ops.ScanInput{
		Text:     input.Text,
		URL:      input.URL,
		Remember: input.Remember,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRecent handles the history_recent tool call.
func (h *Handlers) HandleRecent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RecentRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Recent(h.store, ops.RecentInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the history_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.List(h.store)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFilter handles the history_filter tool call.
func (h *Handlers) HandleFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FilterRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Filter(h.store, ops.FilterInput{
		FalseFriendsOnly: input.FalseFriendsOnly,
		JLPTLevel:        input.JLPTLevel,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the history_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(h.store)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRemove handles the history_remove tool call.
func (h *Handlers) HandleRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Remove(h.store, ops.RemoveInput{
		ID:      input.ID,
		Literal: input.Literal,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleContains handles the history_contains tool call.
func (h *Handlers) HandleContains(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ContainsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Contains(h.store, ops.ContainsInput{
		ID:      input.ID,
		Literal: input.Literal,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClear handles the history_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Clear(h.store)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the history_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.store, h.cfg, ops.ExportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImport handles the history_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(h.store, h.cfg, ops.ImportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var yErr *errors.YomikaeError
	if stderrors.As(err, &yErr) {
		errorObj := map[string]any{
			"code":    yErr.Code,
			"message": yErr.Message,
			"status":  yErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if yErr.Code != errors.ErrInternal && yErr.Details != nil {
			errorObj["details"] = yErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
