// Package mcptools exposes the advisor as MCP tools.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src"
	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/lang"
)

const (
	ToolLanguages = "advisor_languages"
	ToolAsk       = "advisor_ask"
)

// NewServer builds an MCP server with the advisor tools registered.
func NewServer(deps *src.Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Agri Advisor MCP",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	Register(s, deps)
	return s
}

// Register adds advisor_languages and advisor_ask to s.
func Register(s *server.MCPServer, deps *src.Deps) {
	h := &handlers{deps: deps}

	s.AddTool(mcp.NewTool(ToolLanguages,
		mcp.WithDescription("List the languages the advisor can answer in, as 'Name (code)' lines"),
	), h.languages)

	s.AddTool(mcp.NewTool(ToolAsk,
		mcp.WithDescription("Ask about fertilizer for a crop, humidity or temperature. The answer is translated into the chosen language."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("Question, e.g. 'fertilizer for Wheat' or 'humidity'")),
		mcp.WithString("language", mcp.Description("Language name or code (defaults to English)")),
	), h.ask)
}

// Serve blocks serving s on stdio or streamable HTTP at addr.
func Serve(s *server.MCPServer, transport, addr string) error {
	switch transport {
	case "stdio", "":
		return server.ServeStdio(s)
	case "http":
		return server.NewStreamableHTTPServer(s).Start(addr)
	default:
		return fmt.Errorf("unknown mcp transport %q", transport)
	}
}

type handlers struct {
	deps *src.Deps
}

func (h *handlers) languages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, l := range lang.All() {
		fmt.Fprintf(&b, "%s (%s)\n", l.Name, l.Code)
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

func (h *handlers) ask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing prompt"), nil
	}
	language := req.GetString("language", lang.Default().Name)

	res, err := src.RunHeadless(ctx, h.deps, language, prompt)
	switch {
	case err == nil:
	case errors.Is(err, dataset.ErrDatasetLoad) && res != nil:
		// The translated notice is the answer; the cause goes to the log.
		h.logger().Warn("mcp ask: dataset unavailable", zap.Error(err))
		return mcp.NewToolResultError(res.Reply.String()), nil
	default:
		h.logger().Warn("mcp ask failed", zap.String("language", language), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}
	return mcp.NewToolResultText(res.Reply.String()), nil
}

func (h *handlers) logger() *zap.Logger {
	if h.deps == nil || h.deps.Log == nil {
		return zap.NewNop()
	}
	return h.deps.Log
}
