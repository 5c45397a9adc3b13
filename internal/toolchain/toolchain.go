// Package toolchain discovers the Java runtime and provides the decompiler.
// It is resolved once per process and shared read-only by every request.
package toolchain

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// Options configures Resolve.
type Options struct {
	JavaHome          string
	ProbeTimeout      time.Duration
	DecompilerCommand []string
	CFRVersion        string
	DownloadURL       string
	// HomeDir holds the provisioned decompiler under bin/.
	HomeDir          string
	DecompileTimeout time.Duration
}

// Toolchain is the process-wide runtime and decompiler configuration.
type Toolchain struct {
	// JavaPath is empty when no runtime was found.
	JavaPath string
	JavaHome string
	// DecompilerArgv is the configured command, or [java -jar <cfr jar>]
	// once CFR is installed.
	DecompilerArgv []string
	// Err is the discovery failure, reported by requests that need a runtime.
	Err error

	decompiler Decompiler
}

// Resolve discovers the runtime and prepares the decompiler. A missing runtime
// is not fatal here: it is stored in Err and only requests that decompile
// fail with it.
func Resolve(ctx context.Context, opts Options, logger *log.Logger) *Toolchain {
	if logger == nil {
		logger = log.Default()
	}

	tc := &Toolchain{}
	rt, err := DiscoverRuntime(ctx, opts.JavaHome, opts.ProbeTimeout, logger)
	if err == nil {
		tc.JavaPath = rt.JavaPath
		tc.JavaHome = rt.Home
	} else {
		tc.Err = err
	}

	switch {
	case len(opts.DecompilerCommand) > 0:
		tc.DecompilerArgv = append([]string{}, opts.DecompilerCommand...)
		tc.decompiler = &CommandDecompiler{Argv: tc.DecompilerArgv, Timeout: opts.DecompileTimeout}
	case err != nil:
		tc.decompiler = unavailableDecompiler{err: err}
		logger.Warn("decompilation unavailable", "err", err)
	default:
		provider := NewCFRProvider(filepath.Join(opts.HomeDir, "bin"), opts.CFRVersion, opts.DownloadURL, logger)
		tc.DecompilerArgv = []string{tc.JavaPath, "-jar", cfrJarPath(filepath.Join(opts.HomeDir, "bin"), provider.Version())}
		tc.decompiler = &cfrDecompiler{javaPath: tc.JavaPath, provider: provider, timeout: opts.DecompileTimeout}
	}
	return tc
}

// Decompiler returns the decompiler for this toolchain.
func (t *Toolchain) Decompiler() Decompiler {
	if t.decompiler == nil {
		return unavailableDecompiler{err: cferrors.New(cferrors.ErrCodeToolchainMissing, "toolchain not resolved")}
	}
	return t.decompiler
}

// RequireJava returns the runtime path or the discovery error.
func (t *Toolchain) RequireJava() (string, error) {
	if t.JavaPath == "" {
		if t.Err != nil {
			return "", t.Err
		}
		return "", cferrors.New(cferrors.ErrCodeToolchainMissing, "no java runtime available").
			WithHint("install a JDK and set JAVA_HOME")
	}
	return t.JavaPath, nil
}
