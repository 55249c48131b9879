// Package prompts implements MCP prompt handlers for the Wiki.js sync
// server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SetupPrompt handles the wiki-setup MCP prompt.
// It guides the AI through detecting the surroundings and initializing the
// right documentation context.
type SetupPrompt struct{}

// NewSetupPrompt creates a SetupPrompt.
func NewSetupPrompt() *SetupPrompt {
	return &SetupPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SetupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("wiki-setup",
		mcp.WithPromptDescription(
			"Set up documentation context for this directory. Detects whether "+
				"you are in a lone repository, a multi-repo workspace, or a "+
				"monorepo, and initializes the matching context.",
		),
		mcp.WithArgument("wiki_space",
			mcp.ArgumentDescription("Wiki.js namespace to use. Defaults to the repository or workspace directory name."),
		),
		mcp.WithArgument("scope",
			mcp.ArgumentDescription("Force 'repository' or 'workspace' instead of following the detected suggestion."),
		),
	)
}

// Handle processes the wiki-setup prompt request.
func (p *SetupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	space := ""
	scope := ""
	if args := req.Params.Arguments; args != nil {
		space = args["wiki_space"]
		scope = args["scope"]
	}

	spaceClause := "let the wiki space default to the directory name"
	if space != "" {
		spaceClause = fmt.Sprintf("pass wiki_space='%s'", space)
	}

	scopeClause := "Follow the suggested level from the detection output: " +
		"`wiki_init_workspace` when it says workspace, `wiki_init_repository` otherwise."
	if scope != "" {
		scopeClause = fmt.Sprintf("Initialize at the **%s** level regardless of the suggestion.", scope)
	}

	return &mcp.GetPromptResult{
		Description: "Set up Wiki.js documentation context",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to set up documentation context for this directory.\n\n"+
						"Please:\n"+
						"1. Run `wiki_detect_context` and show me what it found\n"+
						"2. %s When initializing, %s\n"+
						"3. Confirm the result with `wiki_get_context`\n"+
						"4. Tell me which files to document first and how to record them with `wiki_add_file_mapping`",
					scopeClause, spaceClause,
				)),
			},
		},
	}, nil
}
