package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/listkeeper/internal/actions"
)

// ─── CreateListTool ─────────────────────────────────────────────────────────

// CreateListTool handles the list_create MCP tool.
type CreateListTool struct {
	lists Executor
}

// NewCreateListTool creates a CreateListTool.
func NewCreateListTool(lists Executor) *CreateListTool {
	return &CreateListTool{lists: lists}
}

// Definition returns the MCP tool definition for list_create.
func (t *CreateListTool) Definition() mcp.Tool {
	return mcp.NewTool("list_create",
		mcp.WithDescription("Create an empty named list. An existing list is left untouched."),
		mcp.WithString("list_name",
			mcp.Required(),
			mcp.Description("Name of the new list"),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle processes the list_create tool call.
func (t *CreateListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return execute(ctx, t.lists, "create list", actions.CreateList{ListName: listNameArg(req)})
}

// ─── GetListTool ────────────────────────────────────────────────────────────

// GetListTool handles the list_get MCP tool.
type GetListTool struct {
	lists Executor
}

// NewGetListTool creates a GetListTool.
func NewGetListTool(lists Executor) *GetListTool {
	return &GetListTool{lists: lists}
}

// Definition returns the MCP tool definition for list_get.
func (t *GetListTool) Definition() mcp.Tool {
	return mcp.NewTool("list_get",
		mcp.WithDescription(
			"Show a named list. Returns its items as text plus an HTML rendering in the structured result. "+
				"A missing list is reported, not created.",
		),
		mcp.WithString("list_name",
			mcp.Required(),
			mcp.Description("Name of the list"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the list_get tool call.
func (t *GetListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return execute(ctx, t.lists, "get list", actions.GetList{ListName: listNameArg(req)})
}

// ─── ClearListTool ──────────────────────────────────────────────────────────

// ClearListTool handles the list_clear MCP tool.
type ClearListTool struct {
	lists Executor
}

// NewClearListTool creates a ClearListTool.
func NewClearListTool(lists Executor) *ClearListTool {
	return &ClearListTool{lists: lists}
}

// Definition returns the MCP tool definition for list_clear.
func (t *ClearListTool) Definition() mcp.Tool {
	return mcp.NewTool("list_clear",
		mcp.WithDescription("Remove every item from an existing list. The list itself stays."),
		mcp.WithString("list_name",
			mcp.Required(),
			mcp.Description("Name of the list"),
		),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

// Handle processes the list_clear tool call.
func (t *ClearListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return execute(ctx, t.lists, "clear", actions.ClearList{ListName: listNameArg(req)})
}
