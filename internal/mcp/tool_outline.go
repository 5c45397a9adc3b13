package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/gradle-class-finder/internal/outline"
	"github.com/mvp-joe/gradle-class-finder/internal/source"
)

// OutlineResponse is the get_class_outline result.
type OutlineResponse struct {
	*outline.Outline
	Provenance source.Provenance `json:"provenance"`
}

// AddGetClassOutlineTool registers the get_class_outline tool with an MCP server.
func AddGetClassOutlineTool(s *server.MCPServer, r SourceResolver, logger *log.Logger) {
	tool := mcp.NewTool(
		"get_class_outline",
		mcp.WithDescription("Parse a class's source and list its package, types and methods (including constructors and multi-line signatures) with line spans."),
		mcp.WithString("jar_path",
			mcp.Required(),
			mcp.Description("Archive path returned by find_class, or a local .java file")),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Fully-qualified class name")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createGetClassOutlineHandler(r, logger))
}

func createGetClassOutlineHandler(r SourceResolver, logger *log.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args classArgs
		if res := bindArguments(request, &args); res != nil {
			return res, nil
		}
		if res := requireFields([2]string{"jar_path", args.JarPath}, [2]string{"class_name", args.ClassName}); res != nil {
			return res, nil
		}

		l := requestLogger(logger, "get_class_outline")
		rec, err := r.Resolve(ctx, source.RequestFromPath(args.JarPath, args.ClassName))
		if err != nil {
			return toolError(l, err)
		}
		if rec.Provenance == source.ProvenanceError {
			return mcp.NewToolResultError(rec.Text), nil
		}

		out, err := outline.Parse([]byte(rec.Text))
		if err != nil {
			return nil, err
		}
		return marshalToolResponse(OutlineResponse{Outline: out, Provenance: rec.Provenance})
	}
}
