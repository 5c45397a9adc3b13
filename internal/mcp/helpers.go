package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
	"github.com/mvp-joe/gradle-class-finder/internal/finder"
	mcputils "github.com/mvp-joe/gradle-class-finder/internal/mcp-utils"
	"github.com/mvp-joe/gradle-class-finder/internal/source"
)

// ClassFinder finds the archives that contain a class.
type ClassFinder interface {
	Find(ctx context.Context, q finder.Query, progress finder.ProgressReporter) ([]finder.Match, error)
}

// SourceResolver recovers source text for a class.
type SourceResolver interface {
	Resolve(ctx context.Context, req source.Request) (*source.Recovered, error)
}

// Services are the collaborators the tools delegate to. They hold no
// per-request state, so handlers may run concurrently.
type Services struct {
	Finder   ClassFinder
	Resolver SourceResolver
	Logger   *log.Logger
}

// requestLogger tags a logger with a fresh request id.
func requestLogger(logger *log.Logger, tool string) *log.Logger {
	return logger.With("tool", tool, "request_id", uuid.NewString())
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// toolError reports coded errors to the client as tool errors. Anything
// else is an internal failure and goes back to the transport.
func toolError(logger *log.Logger, err error) (*mcp.CallToolResult, error) {
	if code := cferrors.GetCode(err); code != "" {
		logger.Warn("tool call failed", "code", code, "err", err)
		return mcp.NewToolResultError(cferrors.UserMessage(err)), nil
	}
	logger.Error("tool call failed", "err", err)
	return nil, err
}

// bindArguments checks the raw argument shape before coercing it.
func bindArguments[T any](request mcp.CallToolRequest, target *T) *mcp.CallToolResult {
	if _, ok := request.GetRawArguments().(map[string]any); !ok {
		return mcp.NewToolResultError("invalid arguments format")
	}
	if err := mcputils.CoerceBindArguments(request, target); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: invalid arguments: %v", cferrors.ErrCodeInvalidInput, err))
	}
	return nil
}

// requireFields returns a tool error naming the first empty required field.
func requireFields(fields ...[2]string) *mcp.CallToolResult {
	for _, f := range fields {
		if f[1] == "" {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %s parameter is required", cferrors.ErrCodeInvalidInput, f[0]))
		}
	}
	return nil
}
