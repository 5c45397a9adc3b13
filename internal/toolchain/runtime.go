package toolchain

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// DefaultProbeTimeout bounds each `java -version` probe.
const DefaultProbeTimeout = 5 * time.Second

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Runtime is a discovered Java runtime.
type Runtime struct {
	// JavaPath is the java executable.
	JavaPath string
	// Home is the runtime home when known (empty for a PATH lookup).
	Home string
	// Source names the discovery strategy that produced it.
	Source string
}

type runtimeCandidate struct {
	source string
	home   string
	path   string
}

// javaBinary returns the java executable under a runtime home.
func javaBinary(home string) string {
	name := "java"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(home, "bin", name)
}

// DiscoverRuntime tries, in order, the configured runtime home, $JAVA_HOME and
// java on PATH. Each candidate must answer `-version` within probeTimeout.
func DiscoverRuntime(ctx context.Context, configuredHome string, probeTimeout time.Duration, logger *log.Logger) (*Runtime, error) {
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}

	var candidates []runtimeCandidate
	if configuredHome != "" {
		candidates = append(candidates, runtimeCandidate{"runtime.java_home", configuredHome, javaBinary(configuredHome)})
	}
	if envHome := os.Getenv("JAVA_HOME"); envHome != "" {
		candidates = append(candidates, runtimeCandidate{"JAVA_HOME", envHome, javaBinary(envHome)})
	}
	if p, err := lookPath("java"); err == nil {
		candidates = append(candidates, runtimeCandidate{"PATH", "", p})
	}

	var tried []string
	for _, c := range candidates {
		if err := probeJava(ctx, c.path, probeTimeout); err != nil {
			logger.Debug("java runtime probe failed", "source", c.source, "path", c.path, "err", err)
			tried = append(tried, c.source+"="+c.path)
			continue
		}
		logger.Debug("java runtime found", "source", c.source, "path", c.path)
		return &Runtime{JavaPath: c.path, Home: c.home, Source: c.source}, nil
	}

	err := cferrors.New(cferrors.ErrCodeToolchainMissing, "no usable java runtime found")
	if len(tried) > 0 {
		err = cferrors.New(cferrors.ErrCodeToolchainMissing, "no usable java runtime found (tried %s)", strings.Join(tried, ", "))
	}
	return nil, err.WithHint("install a JDK and set JAVA_HOME, or set runtime.java_home in the config file")
}

func probeJava(ctx context.Context, javaPath string, timeout time.Duration) error {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// java prints its version banner to stderr; only the exit status matters here.
	return exec.CommandContext(probeCtx, javaPath, "-version").Run()
}
