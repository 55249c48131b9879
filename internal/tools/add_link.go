package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/journal"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// AddLinkTool handles the wiki_add_architectural_link MCP tool.
// It appends a cross-repository relationship to the workspace context.
type AddLinkTool struct {
	mgr *wikicontext.Manager
	jnl *journal.Store
}

// NewAddLinkTool creates an AddLinkTool. The journal may be nil when that
// subsystem is disabled.
func NewAddLinkTool(mgr *wikicontext.Manager, jnl *journal.Store) *AddLinkTool {
	return &AddLinkTool{mgr: mgr, jnl: jnl}
}

// Definition returns the MCP tool definition for registration.
func (t *AddLinkTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_add_architectural_link",
		mcp.WithDescription(
			"Record a directional relationship between components in two "+
				"repositories, e.g. web/login-form calls api/auth-service. Links "+
				"are append-only and get a fresh unique id. Requires an "+
				"initialized workspace context.",
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the relationship is, in one sentence."),
		),
		mcp.WithString("from_repo",
			mcp.Required(),
			mcp.Description("Repository on the originating side."),
		),
		mcp.WithString("from_component",
			mcp.Required(),
			mcp.Description("Component on the originating side."),
		),
		mcp.WithString("to_repo",
			mcp.Required(),
			mcp.Description("Repository on the receiving side."),
		),
		mcp.WithString("to_component",
			mcp.Required(),
			mcp.Description("Component on the receiving side."),
		),
		mcp.WithString("relationship",
			mcp.Required(),
			mcp.Description("Relationship verb: calls, depends-on, publishes-to, validates, and similar."),
		),
		mcp.WithNumber("wiki_page_id",
			mcp.Description("Wiki.js page documenting this relationship, if one exists."),
		),
		mcp.WithNumber("from_page_id",
			mcp.Description("Wiki.js page documenting the originating component, if one exists."),
		),
		mcp.WithNumber("to_page_id",
			mcp.Description("Wiki.js page documenting the receiving component, if one exists."),
		),
	)
}

// Handle processes the wiki_add_architectural_link tool call.
func (t *AddLinkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	required := map[string]string{
		"description":    req.GetString("description", ""),
		"from_repo":      req.GetString("from_repo", ""),
		"from_component": req.GetString("from_component", ""),
		"to_repo":        req.GetString("to_repo", ""),
		"to_component":   req.GetString("to_component", ""),
		"relationship":   req.GetString("relationship", ""),
	}
	for name, value := range required {
		if value == "" {
			return mcp.NewToolResultError(fmt.Sprintf("'%s' is required", name)), nil
		}
	}

	link, err := t.mgr.AddArchitecturalLink(wikicontext.ArchitecturalLink{
		Description: required["description"],
		From: wikicontext.LinkEndpoint{
			Repo:      required["from_repo"],
			Component: required["from_component"],
			PageID:    req.GetInt("from_page_id", 0),
		},
		To: wikicontext.LinkEndpoint{
			Repo:      required["to_repo"],
			Component: required["to_component"],
			PageID:    req.GetInt("to_page_id", 0),
		},
		Relationship: required["relationship"],
		WikiPageID:   req.GetInt("wiki_page_id", 0),
	})
	if err != nil {
		if errors.Is(err, wikicontext.ErrNoWorkspaceContext) {
			return mcp.NewToolResultError(
				fmt.Sprintf("%v. Run wiki_init_workspace first.", err),
			), nil
		}
		return nil, fmt.Errorf("adding architectural link: %w", err)
	}

	recordEvent(t.jnl, journal.KindArchLink, "",
		fmt.Sprintf("%s/%s %s %s/%s", link.From.Repo, link.From.Component, link.Relationship, link.To.Repo, link.To.Component))

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Architectural Link Recorded\n\n"+
			"**Id:** `%s`\n"+
			"**From:** %s / %s\n"+
			"**To:** %s / %s\n"+
			"**Relationship:** %s\n\n"+
			"%s\n\n"+
			"View all links with `wiki_get_context` in architectural mode.",
		link.ID, link.From.Repo, link.From.Component, link.To.Repo, link.To.Component,
		link.Relationship, link.Description,
	)), nil
}
