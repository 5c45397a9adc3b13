package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/gradle-class-finder/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for class lookup and source recovery",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
find which dependency provides a class and read its source.

Tools:
- find_class: dependency coordinates and archive paths for a class
- get_source_code: source text, optionally a line range
- get_source_metadata: line count, size and method-like lines
- get_class_outline: package, types and methods with line spans

The server communicates via stdio; logs go to stderr.

Example:
  class-finder mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := stderrLogger()

	svc, err := loadServices(ctx, logger)
	if err != nil {
		return err
	}

	server := mcp.NewMCPServer(svc.mcpServices(), Version)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
