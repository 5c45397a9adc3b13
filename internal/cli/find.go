package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/gradle-class-finder/internal/finder"
	"github.com/mvp-joe/gradle-class-finder/internal/mcp"
)

var (
	findSubmodule string
	findQuiet     bool
	findJSON      bool
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <workspace> <class>",
	Short: "Find the dependency archives that contain a class",
	Long: `Resolve the project's dependencies with Gradle and list every archive that
contains the class, direct dependencies first. Workspace sources and
flat-directory jars (libs/, lib/, flatDir repositories) are searched too.

Examples:
  class-finder find . org.apache.commons.lang3.StringUtils
  class-finder find ~/src/app com.google.common.collect.ImmutableList --submodule core`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findSubmodule, "submodule", "", "submodule path, e.g. 'app' or 'libs/core'")
	findCmd.Flags().BoolVarP(&findQuiet, "quiet", "q", false, "suppress progress output")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "print matches as JSON")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	workspace, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve workspace path: %w", err)
	}

	svc, err := loadServices(ctx, stderrLogger())
	if err != nil {
		return err
	}

	q := finder.Query{WorkspaceDir: workspace, ClassName: args[1], Submodule: findSubmodule}
	return executeFind(ctx, svc.finder, q, cmd.OutOrStdout(), NewCLIProgressReporter(os.Stderr, findQuiet), findJSON)
}

// executeFind runs a query and prints the matches.
func executeFind(ctx context.Context, f mcp.ClassFinder, q finder.Query, out io.Writer, progress finder.ProgressReporter, asJSON bool) error {
	matches, err := f.Find(ctx, q, progress)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(mcp.FindClassResponse{ClassName: q.ClassName, Total: len(matches), Matches: matches})
	}

	if len(matches) == 0 {
		fmt.Fprintf(out, "Class %s not found in dependencies\n", q.ClassName)
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%s\n", m.DependencyCoordinates)
		fmt.Fprintf(out, "  jar:     %s\n", m.JarPath)
		if m.SourceJarPath != "" {
			fmt.Fprintf(out, "  sources: %s\n", m.SourceJarPath)
		}
	}
	return nil
}
