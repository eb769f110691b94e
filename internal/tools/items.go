package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/listkeeper/internal/actions"
)

const wildcardRejected = "wildcard match rejected: every item must be a simple noun of one or two words with no function words"

// ─── AddItemsTool ───────────────────────────────────────────────────────────

// AddItemsTool handles the list_add_items MCP tool.
type AddItemsTool struct {
	lists Executor
}

// NewAddItemsTool creates an AddItemsTool.
func NewAddItemsTool(lists Executor) *AddItemsTool {
	return &AddItemsTool{lists: lists}
}

// Definition returns the MCP tool definition for list_add_items.
func (t *AddItemsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_add_items",
		mcp.WithDescription(
			"Add items to a named list. The list is created if it does not exist. "+
				"Items already on the list are skipped.",
		),
		mcp.WithString("list_name",
			mcp.Required(),
			mcp.Description("Name of the list (e.g. 'groceries')"),
		),
		mcp.WithArray("items",
			mcp.Required(),
			mcp.Description("Items to add, in order"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("wildcard",
			mcp.Description("Set when the items came from a fuzzy match; they are then checked to be simple nouns before anything changes"),
		),
	)
}

// Handle processes the list_add_items tool call.
func (t *AddItemsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := actions.AddItems{ListName: listNameArg(req), Items: itemsArg(req)}
	if req.GetBool("wildcard", false) && !t.lists.ValidateWildcard(action) {
		return mcp.NewToolResultError(wildcardRejected), nil
	}
	return execute(ctx, t.lists, "add items", action)
}

// ─── RemoveItemsTool ────────────────────────────────────────────────────────

// RemoveItemsTool handles the list_remove_items MCP tool.
type RemoveItemsTool struct {
	lists Executor
}

// NewRemoveItemsTool creates a RemoveItemsTool.
func NewRemoveItemsTool(lists Executor) *RemoveItemsTool {
	return &RemoveItemsTool{lists: lists}
}

// Definition returns the MCP tool definition for list_remove_items.
func (t *RemoveItemsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_remove_items",
		mcp.WithDescription(
			"Remove items from a named list. Items not on the list are ignored, "+
				"and removing from a list that does not exist succeeds without creating it.",
		),
		mcp.WithString("list_name",
			mcp.Required(),
			mcp.Description("Name of the list"),
		),
		mcp.WithArray("items",
			mcp.Required(),
			mcp.Description("Items to remove"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("wildcard",
			mcp.Description("Set when the items came from a fuzzy match; they are then checked to be simple nouns before anything changes"),
		),
	)
}

// Handle processes the list_remove_items tool call.
func (t *RemoveItemsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := actions.RemoveItems{ListName: listNameArg(req), Items: itemsArg(req)}
	if req.GetBool("wildcard", false) && !t.lists.ValidateWildcard(action) {
		return mcp.NewToolResultError(wildcardRejected), nil
	}
	return execute(ctx, t.lists, "remove items", action)
}
