// Package gradle runs the build tool to obtain a project's resolved
// dependencies. It is the only component that talks to Gradle; everything
// downstream consumes plain text or decoded report entries.
package gradle

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/gradle-class-finder/internal/coords"
	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// DefaultConfiguration is the configuration whose resolution is reported.
const DefaultConfiguration = "compileClasspath"

// Options configures a Runner.
type Options struct {
	// Command is an explicit gradle executable. When empty the workspace's
	// wrapper (./gradlew) is used if present, else "gradle" from PATH.
	Command string

	// Configuration passed to `dependencies --configuration`.
	Configuration string

	// JavaHome is exported as JAVA_HOME to the build when set.
	JavaHome string

	// JavaPath and HelperJar enable Report. Both are required for it.
	JavaPath  string
	HelperJar string
}

// Runner invokes gradle (or the tooling-API helper) for a workspace.
type Runner struct {
	opts   Options
	logger *log.Logger
}

// NewRunner creates a Runner.
func NewRunner(opts Options, logger *log.Logger) *Runner {
	if opts.Configuration == "" {
		opts.Configuration = DefaultConfiguration
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{opts: opts, logger: logger}
}

// HasHelper reports whether the structured helper report is available.
func (r *Runner) HasHelper() bool {
	return r.opts.HelperJar != ""
}

// TaskPath converts a submodule path ("libs/core" or ":libs:core") to the
// qualified dependencies task (":libs:core:dependencies").
func TaskPath(submodule string) string {
	submodule = strings.Trim(strings.ReplaceAll(submodule, "/", ":"), ":")
	if submodule == "" {
		return "dependencies"
	}
	return ":" + submodule + ":dependencies"
}

// Executable returns the gradle command to use for the workspace.
func (r *Runner) Executable(workspaceDir string) string {
	if r.opts.Command != "" {
		return r.opts.Command
	}
	wrapper := filepath.Join(workspaceDir, "gradlew")
	if info, err := os.Stat(wrapper); err == nil && !info.IsDir() {
		return wrapper
	}
	return "gradle"
}

// Dependencies runs the dependencies task and returns its standard output.
// A build failure aborts the request with UPSTREAM_QUERY_FAILURE.
func (r *Runner) Dependencies(ctx context.Context, workspaceDir, submodule string) (string, error) {
	args := []string{TaskPath(submodule), "--configuration", r.opts.Configuration}
	stdout, err := r.run(ctx, workspaceDir, r.Executable(workspaceDir), args...)
	if err != nil {
		return "", err
	}
	return stdout, nil
}

// Tree runs Dependencies and parses the output.
func (r *Runner) Tree(ctx context.Context, workspaceDir, submodule string) (*coords.Tree, error) {
	out, err := r.Dependencies(ctx, workspaceDir, submodule)
	if err != nil {
		return nil, err
	}
	return coords.ParseTree(out), nil
}

// Report runs the tooling-API helper and decodes its JSON report.
func (r *Runner) Report(ctx context.Context, workspaceDir, className, submodule string) ([]coords.ReportEntry, error) {
	if r.opts.HelperJar == "" {
		return nil, cferrors.New(cferrors.ErrCodeInvalidInput, "no helper jar configured")
	}
	if r.opts.JavaPath == "" {
		return nil, cferrors.New(cferrors.ErrCodeToolchainMissing, "a java runtime is required to run the helper").
			WithHint("set JAVA_HOME or runtime.java_home")
	}

	args := []string{"-jar", r.opts.HelperJar, workspaceDir, className}
	if submodule != "" {
		args = append(args, submodule)
	}
	stdout, err := r.run(ctx, workspaceDir, r.opts.JavaPath, args...)
	if err != nil {
		return nil, err
	}
	return coords.ParseReport([]byte(stdout))
}

func (r *Runner) run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if r.opts.JavaHome != "" {
		cmd.Env = append(cmd.Env, "JAVA_HOME="+r.opts.JavaHome)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running build tool", "cmd", name, "args", strings.Join(args, " "), "dir", dir)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = lastLines(stdout.String(), 20)
		}
		return "", cferrors.Wrap(cferrors.ErrCodeUpstreamQuery, err, "%s %s failed: %s",
			filepath.Base(name), strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
