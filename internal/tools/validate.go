package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/listkeeper/internal/wildcard"
)

// ValidateWildcardTool handles the list_validate_wildcard MCP tool.
// It has no dependencies; the check is pure.
type ValidateWildcardTool struct{}

// NewValidateWildcardTool creates a ValidateWildcardTool.
func NewValidateWildcardTool() *ValidateWildcardTool {
	return &ValidateWildcardTool{}
}

// Definition returns the MCP tool definition for list_validate_wildcard.
func (t *ValidateWildcardTool) Definition() mcp.Tool {
	return mcp.NewTool("list_validate_wildcard",
		mcp.WithDescription(
			"Check whether fuzzy-matched candidate strings look like simple list items: "+
				"one or two words and no function words such as 'the', 'of', 'it'.",
		),
		mcp.WithArray("candidates",
			mcp.Required(),
			mcp.Description("Candidate strings to check"),
			mcp.WithStringItems(),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the list_validate_wildcard tool call.
func (t *ValidateWildcardTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	candidates := req.GetStringSlice("candidates", nil)
	if len(candidates) == 0 {
		return mcp.NewToolResultError("'candidates' is required"), nil
	}

	var rejected []string
	for _, c := range candidates {
		if !wildcard.IsSimpleNoun(c) {
			rejected = append(rejected, c)
		}
	}

	var sb strings.Builder
	if len(rejected) == 0 {
		sb.WriteString("accepted: all candidates are simple nouns")
	} else {
		sb.WriteString("rejected:")
		for _, c := range rejected {
			fmt.Fprintf(&sb, "\n- %q", c)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
