// Package tools implements the MCP tool handlers for named lists.
//
// Each tool follows the same shape:
// - A struct holding its dependencies, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() turns the request into a typed action, executes it and maps
//   the outcome onto a tool result
//
// Failures are reported as tool errors (IsError results) with a nil Go
// error, so the client sees a readable message instead of a protocol fault.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/listkeeper/internal/actions"
	"github.com/HendryAvila/listkeeper/internal/session"
)

// Executor runs one action against a session's store and gates actions
// whose items came from a wildcard match.
type Executor interface {
	Execute(ctx context.Context, action actions.Action) (*actions.Result, error)
	ValidateWildcard(action actions.Action) bool
}

// itemsArg reads the items array as given. Validation is left to the
// dispatcher.
func itemsArg(req mcp.CallToolRequest) []string {
	return req.GetStringSlice("items", nil)
}

// listNameArg reads the list_name argument as given.
func listNameArg(req mcp.CallToolRequest) string {
	return req.GetString("list_name", "")
}

// toolResult renders a dispatch result. The text content carries the
// history line; the structured content carries the full payload,
// entities and HTML included.
func toolResult(r *actions.Result) *mcp.CallToolResult {
	text := r.HistoryText
	if text == "" {
		text = r.DisplayText
	}
	return mcp.NewToolResultStructured(r, text)
}

// errorResult maps an execution error onto a tool error. Validation and
// unknown-action errors keep their own message; anything else is prefixed
// with the operation that failed.
func errorResult(op string, err error) *mcp.CallToolResult {
	switch {
	case actions.IsValidation(err), errors.Is(err, actions.ErrUnknownAction):
		return mcp.NewToolResultError(err.Error())
	case errors.Is(err, session.ErrDisabled):
		return mcp.NewToolResultError("lists are not enabled for this session")
	default:
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", op, err))
	}
}

// execute runs action and maps the outcome. op names the operation in
// failure messages.
func execute(ctx context.Context, exec Executor, op string, action actions.Action) (*mcp.CallToolResult, error) {
	r, err := exec.Execute(ctx, action)
	if err != nil {
		return errorResult(op, err), nil
	}
	if r == nil {
		return mcp.NewToolResultText(fmt.Sprintf("No list named %s, nothing to %s", actions.ListName(action), op)), nil
	}
	return toolResult(r), nil
}
