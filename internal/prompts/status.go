package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the lists-status MCP prompt.
// It instructs the AI to read the snapshot resource and summarize it.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("lists-status",
		mcp.WithPromptDescription("Summarize every list and how many items each one holds."),
	)
}

// Handle processes the lists-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Lists Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please read the `lists://snapshot` resource.\n\n" +
						"Then:\n" +
						"1. Show every list with its item count\n" +
						"2. Point out empty lists\n" +
						"3. Ask whether I want to change anything",
				),
			},
		},
	}, nil
}
