// Package resources implements MCP resource handlers for named lists.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (lists://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SnapshotURI addresses the full persisted state.
const SnapshotURI = "lists://snapshot"

// Snapshotter returns the current JSON snapshot of a session's lists.
type Snapshotter interface {
	Snapshot() ([]byte, error)
}

// Handler manages list resource endpoints.
type Handler struct {
	source Snapshotter
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(source Snapshotter) *Handler {
	return &Handler{source: source}
}

// SnapshotResource returns the MCP resource definition for the snapshot.
func (h *Handler) SnapshotResource() mcp.Resource {
	return mcp.NewResource(
		SnapshotURI,
		"Lists Snapshot",
		mcp.WithResourceDescription("Every named list and its items, in the persisted JSON format"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSnapshot returns the snapshot, indented for reading.
func (h *Handler) HandleSnapshot(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := h.source.Snapshot()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(pretty),
		},
	}, nil
}
