// Package resources implements the MCP resource handlers for wikijs-mcp.
//
// Resources provide read-only data the host can consume for context,
// addressed by URI (wikijs://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// Handler serves the wikijs:// resources.
type Handler struct {
	mgr *wikicontext.Manager
}

// NewHandler creates a resource handler backed by the context manager.
func NewHandler(mgr *wikicontext.Manager) *Handler {
	return &Handler{mgr: mgr}
}

// ContextResource returns the definition of the current-context resource.
func (h *Handler) ContextResource() mcp.Resource {
	return mcp.NewResource(
		"wikijs://context/current",
		"Current Documentation Context",
		mcp.WithResourceDescription(
			"The documentation context projected at the active granularity, as JSON. "+
				"Returns a placeholder when nothing has been initialized.",
		),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleContext serves wikijs://context/current. The projection never
// fails on missing state, so reads always succeed.
func (h *Handler) HandleContext(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view := h.mgr.ContextForClaude("")

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling context view: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
