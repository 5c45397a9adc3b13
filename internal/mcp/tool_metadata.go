package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/gradle-class-finder/internal/source"
)

type classArgs struct {
	JarPath   string `json:"jar_path"`
	ClassName string `json:"class_name"`
}

// MetadataResponse is the get_source_metadata result.
type MetadataResponse struct {
	source.Metadata
	Provenance source.Provenance `json:"provenance"`
}

// AddGetSourceMetadataTool registers the get_source_metadata tool with an MCP server.
func AddGetSourceMetadataTool(s *server.MCPServer, r SourceResolver, logger *log.Logger) {
	tool := mcp.NewTool(
		"get_source_metadata",
		mcp.WithDescription("Summarize a class's source: line count, size in bytes, and method-like lines with their line numbers. Method detection is a lexical heuristic; use the line numbers with get_source_code."),
		mcp.WithString("jar_path",
			mcp.Required(),
			mcp.Description("Archive path returned by find_class, or a local .java file")),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Fully-qualified class name")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createGetSourceMetadataHandler(r, logger))
}

func createGetSourceMetadataHandler(r SourceResolver, logger *log.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args classArgs
		if res := bindArguments(request, &args); res != nil {
			return res, nil
		}
		if res := requireFields([2]string{"jar_path", args.JarPath}, [2]string{"class_name", args.ClassName}); res != nil {
			return res, nil
		}

		l := requestLogger(logger, "get_source_metadata")
		rec, err := r.Resolve(ctx, source.RequestFromPath(args.JarPath, args.ClassName))
		if err != nil {
			return toolError(l, err)
		}

		return marshalToolResponse(MetadataResponse{
			Metadata:   source.Summarize(rec.Text),
			Provenance: rec.Provenance,
		})
	}
}
