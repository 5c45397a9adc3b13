package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "class-finder",
	Short: "Find and read the classes of a Gradle project's dependencies",
	Long: `class-finder locates the dependency archive that provides a JVM class in a
Gradle project and recovers its source, from the workspace, a sources jar, or
by decompiling the class.

Run "class-finder mcp" to expose the same operations to an MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Per-checkout GRADLE_USER_HOME / JAVA_HOME; absence is normal.
		_ = godotenv.Load()
	},
}

// Execute runs the root command with ctx. The caller reports the error.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gradle-class-finder/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger creates the process logger. Stdout is reserved for command
// output and the MCP protocol, so callers pass stderr.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "class-finder",
	})
}

func logLevel() log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func stderrLogger() *log.Logger {
	return newLogger(os.Stderr, logLevel())
}
