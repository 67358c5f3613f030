package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"cardbox/internal/config"
	"cardbox/internal/errors"
	"cardbox/internal/ops"
	"cardbox/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	st  *store.Store
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{st: st, cfg: cfg}
}

// Request types for each tool

// IngestRequest represents the arguments for deck_ingest.
type IngestRequest struct {
	Files []string `json:"files"`
}

// IngestURLRequest represents the arguments for deck_ingest_url.
type IngestURLRequest struct {
	URL string `json:"url"`
}

// ListRequest represents the arguments for deck_list.
type ListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ExportRequest represents the arguments for deck_export.
type ExportRequest struct {
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
}

// ClearRequest represents the arguments for deck_clear.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// Handler implementations

// HandleIngest handles the deck_ingest tool call.
func (h *Handlers) HandleIngest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IngestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	sources := make([]ops.Source, 0, len(input.Files))
	for _, path := range input.Files {
		sources = append(sources, ops.FileSource(path))
	}

	result, err := ops.Ingest(ctx, h.st, ops.IngestInput{Sources: sources})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleIngestURL handles the deck_ingest_url tool call.
func (h *Handlers) HandleIngestURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IngestURLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.IngestURL(ctx, h.st, ops.IngestURLInput{URL: input.URL})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the deck_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.st, ops.ListInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the deck_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the deck_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.st, h.cfg, ops.ExportInput{
		Path:   input.Path,
		Format: ops.ExportFormat(input.Format),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClear handles the deck_clear tool call.
// MCP clients cannot prompt interactively, so the confirmation is carried
// in the request itself as confirm=true.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	confirmer := store.ConfirmerFunc(func(string) bool { return input.Confirm })

	result, err := ops.Clear(h.st, confirmer)
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

	if boxErr, ok := err.(*errors.BoxError); ok {
		errorObj := map[string]any{
			"code":    boxErr.Code,
			"message": boxErr.Message,
			"status":  boxErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if boxErr.Code != errors.ErrInternal && boxErr.Details != nil {
			errorObj["details"] = boxErr.Details
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
