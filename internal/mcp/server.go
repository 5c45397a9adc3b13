// Package mcp exposes class lookup and source recovery as MCP tools served
// over stdio.
package mcp

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the name announced during MCP initialization.
const ServerName = "gradle-class-finder"

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	mcp    *server.MCPServer
	logger *log.Logger
}

// NewMCPServer creates a server with every tool registered.
func NewMCPServer(svc Services, version string) *MCPServer {
	if svc.Logger == nil {
		svc.Logger = log.Default()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	AddFindClassTool(mcpServer, svc.Finder, svc.Logger)
	AddGetSourceCodeTool(mcpServer, svc.Resolver, svc.Logger)
	AddGetSourceMetadataTool(mcpServer, svc.Resolver, svc.Logger)
	AddGetClassOutlineTool(mcpServer, svc.Resolver, svc.Logger)

	return &MCPServer{mcp: mcpServer, logger: svc.Logger}
}

// Serve serves on stdin/stdout until ctx is canceled or the client
// disconnects.
func (s *MCPServer) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// ServeIO serves the protocol over the given streams.
func (s *MCPServer) ServeIO(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))

	s.logger.Info("starting MCP server on stdio", "name", ServerName)
	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		s.logger.Info("MCP server stopped")
		return nil
	}
	return err
}
