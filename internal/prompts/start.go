// Package prompts implements MCP prompt handlers for named lists.
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

// StartPrompt handles the lists-start MCP prompt.
// It tells the AI how to drive the list tools for a conversation.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("lists-start",
		mcp.WithPromptDescription(
			"Start managing named lists. Explains the list tools and, "+
				"when a list name is given, opens that list.",
		),
		mcp.WithArgument("list_name",
			mcp.ArgumentDescription("List to open first (e.g. 'groceries')"),
		),
	)
}

// Handle processes the lists-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	listName := ""
	if args := req.Params.Arguments; args != nil {
		listName = args["list_name"]
	}

	first := "Ask me which list I want to work on."
	description := "Start managing lists"
	if listName != "" {
		first = fmt.Sprintf("Run `list_get` with list_name='%s' and show me what is on it.", listName)
		description = fmt.Sprintf("Start managing lists: %s", listName)
	}

	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to manage my named lists.\n\n" +
						"Please:\n" +
						"1. " + first + "\n" +
						"2. When I mention things to add or remove, call `list_add_items` or `list_remove_items`\n" +
						"3. If you guessed the items from loose wording, pass wildcard=true so odd phrases are rejected\n" +
						"4. Use `list_create` for a new empty list and `list_clear` to empty one\n" +
						"5. After each change, repeat back what the tool reported",
				),
			},
		},
	}, nil
}
