package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the wiki-status MCP prompt.
// It asks the AI to summarize the current documentation state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("wiki-status",
		mcp.WithPromptDescription(
			"Show the current documentation status: detected context, tracked "+
				"files, and recent sync activity.",
		),
	)
}

// Handle processes the wiki-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Wiki.js documentation status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Give me a documentation status report.\n\n" +
						"Please:\n" +
						"1. Run `wiki_detect_context` to classify where we are\n" +
						"2. Run `wiki_get_context` for the suggested level\n" +
						"3. If the sync journal is available, run `wiki_sync_history` for recent activity\n" +
						"4. Summarize: what is documented, what looks stale, and what to sync next",
				),
			},
		},
	}, nil
}
