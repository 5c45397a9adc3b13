package mcp

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/gradle-class-finder/internal/finder"
)

type findClassArgs struct {
	WorkspaceDir  string `json:"workspace_dir"`
	ClassName     string `json:"class_name"`
	SubmodulePath string `json:"submodule_path,omitempty"`
}

// FindClassResponse is the find_class result.
type FindClassResponse struct {
	ClassName string         `json:"class_name"`
	Total     int            `json:"total"`
	Matches   []finder.Match `json:"matches"`
}

// AddFindClassTool registers the find_class tool with an MCP server.
func AddFindClassTool(s *server.MCPServer, f ClassFinder, logger *log.Logger) {
	tool := mcp.NewTool(
		"find_class",
		mcp.WithDescription("Find which dependency archives of a Gradle project contain a class. Returns the Maven coordinates, archive path and companion sources archive of every match, direct dependencies first."),
		mcp.WithString("workspace_dir",
			mcp.Required(),
			mcp.Description("Absolute path to the Gradle project root")),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Fully-qualified class name, e.g. 'org.apache.commons.lang3.StringUtils'")),
		mcp.WithString("submodule_path",
			mcp.Description("Optional submodule, e.g. 'app' or 'libs/core'")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFindClassHandler(f, logger))
}

func createFindClassHandler(f ClassFinder, logger *log.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args findClassArgs
		if res := bindArguments(request, &args); res != nil {
			return res, nil
		}
		if res := requireFields([2]string{"workspace_dir", args.WorkspaceDir}, [2]string{"class_name", args.ClassName}); res != nil {
			return res, nil
		}

		l := requestLogger(logger, "find_class")
		l.Info("finding class", "class", args.ClassName, "workspace", args.WorkspaceDir, "submodule", args.SubmodulePath)

		matches, err := f.Find(ctx, finder.Query{
			WorkspaceDir: args.WorkspaceDir,
			ClassName:    args.ClassName,
			Submodule:    args.SubmodulePath,
		}, nil)
		if err != nil {
			return toolError(l, err)
		}

		l.Info("class search finished", "matches", len(matches))
		if len(matches) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("Class %s not found in dependencies", args.ClassName)), nil
		}

		return marshalToolResponse(FindClassResponse{
			ClassName: args.ClassName,
			Total:     len(matches),
			Matches:   matches,
		})
	}
}
