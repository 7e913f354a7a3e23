// Package mcp implements the Model Context Protocol server, exposing docq
// queries and document operations to LLM clients over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/repo"
	"github.com/jpl-au/docq/internal/service"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no repository exists yet.
const ErrNotInitialised = "repository not initialised - call docq_init first"

// Serve starts the MCP server over stdio with the core tools plus the given
// extension tools.
//
// The server starts even if no repository exists, so a client can call
// docq_init instead of failing with an opaque error. Until then every tool
// that needs the repository returns ErrNotInitialised.
func Serve(db, dir string, tools []extension.MCPTool) error {
	// stdout carries the JSON-RPC stream
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	h := &handlers{db: db, dir: dir}
	if err := h.open(); err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open repository", "error", err)
		return err
	}
	defer h.close()
	if svc, _ := h.current(); svc == nil {
		slog.Info("docq not initialised, starting in uninitialised mode - call docq_init to create a repository")
	}

	s := newServer(h, tools)
	slog.Info("docq MCP server ready", "version", Version, "transport", "stdio", "tools", len(tools)+2)

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

func newServer(h *handlers, tools []extension.MCPTool) *server.MCPServer {
	s := server.NewMCPServer(
		"docq",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	for _, t := range tools {
		s.AddTool(t.Tool, h.wrap(t))
	}
	return s
}

// handlers gives tool handlers access to the service. svc is nil until a
// repository has been opened.
type handlers struct {
	db, dir string

	mu  sync.Mutex
	svc service.Service
	cfg *config.Config
}

// open opens the repository and records its project for the audit log.
func (h *handlers) open() error {
	svc, err := document.New(h.db, h.dir)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.svc, h.cfg = svc, svc.Config()
	log.SetProject(svc.Dir())
	return nil
}

func (h *handlers) current() (service.Service, *config.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.svc, h.cfg
}

func (h *handlers) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.svc != nil {
		if err := h.svc.Close(); err != nil {
			slog.Warn("close repository", "error", err)
		}
		h.svc = nil
	}
}

// wrap adapts an extension tool to the server, refusing calls until a
// repository is open.
func (h *handlers) wrap(t extension.MCPTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, cfg := h.current()
		if svc == nil {
			return mcp.NewToolResultError(ErrNotInitialised), nil
		}
		return t.Handler(ctx, extension.NewContext(svc, cfg), req)
	}
}

// registerTools adds the tools that work without a repository.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("docq_init",
			mcp.WithDescription("Initialise a new docq repository. Call this first if other tools return 'repository not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the database is gitignored (not committed to version control)")),
		),
		h.initRepo,
	)

	s.AddTool(
		mcp.NewTool("docq_guide",
			mcp.WithDescription("Get guide content for docq: the query language, key schemas and commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'query', 'keyschema') or empty for the main guide")),
		),
		h.getGuide,
	)
}
