package toolchain

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// installLockRetry is how often a blocked install re-polls the file lock.
const installLockRetry = 100 * time.Millisecond

// CFRProvider manages the CFR jar. The jar is downloaded and verified on
// first use only; later calls return the cached path. Installs are
// serialized across processes by a lock file beside the jar.
type CFRProvider struct {
	binDir      string
	version     string
	urlTemplate string
	logger      *log.Logger

	jarPath     string
	initialized bool
	mu          sync.Mutex
}

// NewCFRProvider creates a provider that installs into binDir.
func NewCFRProvider(binDir, version, urlTemplate string, logger *log.Logger) *CFRProvider {
	if version == "" {
		version = DefaultCFRVersion
	}
	if urlTemplate == "" {
		urlTemplate = DefaultCFRDownloadURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CFRProvider{
		binDir:      binDir,
		version:     version,
		urlTemplate: urlTemplate,
		logger:      logger,
	}
}

// EnsureInstalled returns the path of a verified CFR jar, downloading it if
// needed. Concurrent callers download at most once.
func (p *CFRProvider) EnsureInstalled(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return p.jarPath, nil
	}

	jarPath := cfrJarPath(p.binDir, p.version)
	if verifyJar(jarPath) == nil {
		p.jarPath = jarPath
		p.initialized = true
		return jarPath, nil
	}

	unlock, err := p.lockInstall(ctx, jarPath)
	if err != nil {
		return "", err
	}
	defer unlock()

	// Another process may have finished the install while we waited.
	if _, err := os.Stat(jarPath); err == nil {
		if err := verifyJar(jarPath); err == nil {
			p.jarPath = jarPath
			p.initialized = true
			return jarPath, nil
		}

		p.logger.Warn("existing CFR jar is invalid, re-downloading", "path", jarPath)
		if err := os.Remove(jarPath); err != nil {
			p.logger.Warn("failed to remove invalid CFR jar", "path", jarPath, "err", err)
		}
	}

	url := constructDownloadURL(p.urlTemplate, p.version)
	p.logger.Info("downloading CFR decompiler", "version", p.version, "url", url)

	if err := downloadJar(ctx, url, jarPath); err != nil {
		return "", cferrors.Wrap(cferrors.ErrCodeToolchainMissing, err, "failed to install CFR %s", p.version).
			WithHint("set decompiler.command to a local decompiler, or place cfr-" + p.version + ".jar in " + p.binDir)
	}

	if err := verifyJar(jarPath); err != nil {
		return "", cferrors.Wrap(cferrors.ErrCodeToolchainMissing, err, "downloaded CFR jar failed verification")
	}

	p.logger.Info("CFR installed", "path", jarPath)

	p.jarPath = jarPath
	p.initialized = true
	return jarPath, nil
}

// lockInstall takes the cross-process install lock for jarPath, waiting
// until ctx is done.
func (p *CFRProvider) lockInstall(ctx context.Context, jarPath string) (func(), error) {
	if err := os.MkdirAll(p.binDir, 0755); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeToolchainMissing, err, "failed to create %s", p.binDir)
	}

	lock := flock.New(jarPath + ".lock")
	locked, err := lock.TryLockContext(ctx, installLockRetry)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeToolchainMissing, err, "failed to acquire install lock")
	}
	if !locked {
		return nil, cferrors.New(cferrors.ErrCodeToolchainMissing, "install lock %s is held", lock.Path())
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release install lock", "path", lock.Path(), "err", err)
		}
	}, nil
}

// JarPath returns the installed jar, or "" before EnsureInstalled succeeds.
func (p *CFRProvider) JarPath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jarPath
}

// Version returns the pinned version.
func (p *CFRProvider) Version() string {
	return p.version
}
