// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources that depend on
// abstractions. No business logic lives here, only wiring.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/listkeeper/internal/actions"
	"github.com/HendryAvila/listkeeper/internal/config"
	"github.com/HendryAvila/listkeeper/internal/prompts"
	"github.com/HendryAvila/listkeeper/internal/resources"
	"github.com/HendryAvila/listkeeper/internal/session"
	"github.com/HendryAvila/listkeeper/internal/storage"
	"github.com/HendryAvila/listkeeper/internal/templates"
	"github.com/HendryAvila/listkeeper/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// OpenSession opens the backend named by cfg and enables the configured
// session on it.
//
// The returned cleanup function disables the session and releases the
// backend. It is always non-nil and safe to call even if opening failed.
func OpenSession(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*session.Session, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, noop, fmt.Errorf("invalid config: %w", err)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating template renderer: %w", err)
	}

	gw, closeGW, err := storage.Open(cfg.BackendKind(), cfg.DataDir, logger.Named("storage"))
	if err != nil {
		return nil, noop, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	mgr := session.NewManager(gw, cfg.SnapshotKey, logger,
		session.WithDispatcher(actions.NewDispatcher(renderer, logger)))
	sess, err := mgr.Open(ctx, cfg.SessionID)
	if err != nil {
		_ = closeGW()
		return nil, noop, err
	}

	cleanup := func() {
		mgr.CloseAll()
		if err := closeGW(); err != nil {
			logger.Warn("closing backend", zap.Error(err))
		}
	}
	return sess, cleanup, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function must be called on shutdown (typically via
// defer). It is always non-nil.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.MCPServer, func(), error) {
	sess, cleanup, err := OpenSession(ctx, cfg, logger)
	if err != nil {
		return nil, noop, err
	}

	s := server.NewMCPServer(
		"listkeeper",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	Register(s, sess)
	return s, cleanup, nil
}

// Register adds every list tool, prompt and resource to s, bound to sess.
func Register(s *server.MCPServer, sess *session.Session) {
	if s == nil || sess == nil {
		panic(errors.New("server: Register needs a server and a session"))
	}

	// --- Register list tools ---

	addTool := tools.NewAddItemsTool(sess)
	s.AddTool(addTool.Definition(), addTool.Handle)

	removeTool := tools.NewRemoveItemsTool(sess)
	s.AddTool(removeTool.Definition(), removeTool.Handle)

	createTool := tools.NewCreateListTool(sess)
	s.AddTool(createTool.Definition(), createTool.Handle)

	getTool := tools.NewGetListTool(sess)
	s.AddTool(getTool.Definition(), getTool.Handle)

	clearTool := tools.NewClearListTool(sess)
	s.AddTool(clearTool.Definition(), clearTool.Handle)

	validateTool := tools.NewValidateWildcardTool()
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(sess)
	s.AddResource(resourceHandler.SnapshotResource(), resourceHandler.HandleSnapshot)
}

func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use listkeeper.
func serverInstructions() string {
	return `You have access to listkeeper, a store of named lists (groceries, todo, packing...).

## Tools
- list_add_items: add items to a list, creating it if needed
- list_remove_items: remove items; removing from a missing list is fine
- list_create: create an empty list
- list_get: show a list (text plus HTML in the structured result)
- list_clear: empty an existing list
- list_validate_wildcard: check loosely matched phrases before using them

## Rules
- Every change is saved immediately; there is no separate save step.
- Item names are kept exactly as given. "Milk" and "milk" are different items.
- If you extracted items from loose wording, pass wildcard=true to
  list_add_items or list_remove_items. Phrases like "the bread of life"
  are then rejected instead of being stored.
- Report back the text each tool returns.

## Resources
- lists://snapshot: every list as JSON`
}
