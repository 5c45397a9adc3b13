package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/gradle-class-finder/internal/source"
)

type sourceArgs struct {
	JarPath   string `json:"jar_path"`
	ClassName string `json:"class_name"`
	LineStart *int   `json:"line_start,omitempty"`
	LineEnd   *int   `json:"line_end,omitempty"`
}

// AddGetSourceCodeTool registers the get_source_code tool with an MCP server.
func AddGetSourceCodeTool(s *server.MCPServer, r SourceResolver, logger *log.Logger) {
	tool := mcp.NewTool(
		"get_source_code",
		mcp.WithDescription("Get the source code of a class. Uses the workspace source file or the sources archive when available and decompiles the class otherwise. Optionally restricted to a line range."),
		mcp.WithString("jar_path",
			mcp.Required(),
			mcp.Description("Archive path returned by find_class, or a local .java file")),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Fully-qualified class name")),
		mcp.WithNumber("line_start",
			mcp.Description("First line to return (1-based, inclusive). Needs line_end."),
			mcp.Min(1)),
		mcp.WithNumber("line_end",
			mcp.Description("Last line to return (1-based, inclusive). Needs line_start."),
			mcp.Min(1)),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createGetSourceCodeHandler(r, logger))
}

func createGetSourceCodeHandler(r SourceResolver, logger *log.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args sourceArgs
		if res := bindArguments(request, &args); res != nil {
			return res, nil
		}
		if res := requireFields([2]string{"jar_path", args.JarPath}, [2]string{"class_name", args.ClassName}); res != nil {
			return res, nil
		}

		l := requestLogger(logger, "get_source_code")
		rec, err := r.Resolve(ctx, source.RequestFromPath(args.JarPath, args.ClassName))
		if err != nil {
			return toolError(l, err)
		}
		l.Info("source recovered", "class", args.ClassName, "provenance", rec.Provenance)

		return mcp.NewToolResultText(source.ExtractLines(rec.Text, args.LineStart, args.LineEnd)), nil
	}
}
