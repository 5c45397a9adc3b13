package toolchain

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultCFRVersion is the pinned CFR release.
	DefaultCFRVersion = "0.152"

	// DefaultCFRDownloadURL is the release URL template; each %s is replaced
	// with the version.
	DefaultCFRDownloadURL = "https://github.com/leibnitz27/cfr/releases/download/%s/cfr-%s.jar"

	cfrMainEntry = "org/benf/cfr/reader/Main.class"
)

// cfrJarPath returns where the CFR jar for version lives under binDir.
func cfrJarPath(binDir, version string) string {
	return filepath.Join(binDir, fmt.Sprintf("cfr-%s.jar", version))
}

// constructDownloadURL expands the URL template for version.
// Declared as a variable to allow mocking in tests.
var constructDownloadURL = func(template, version string) string {
	return strings.ReplaceAll(template, "%s", version)
}

// downloadJar fetches url into destPath through a temp file in the same
// directory followed by a rename.
// Declared as a variable to allow mocking in tests.
var downloadJar = func(ctx context.Context, url, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	tmp, err := os.CreateTemp(destDir, "cfr-*.jar.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		tmp.Close()
		return fmt.Errorf("download failed with status %d: %s", resp.StatusCode, resp.Status)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write download: %w", err)
	}

	if err := verifyJar(tmpPath); err != nil {
		return fmt.Errorf("downloaded file is not a CFR jar: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename jar: %w", err)
	}
	return nil
}

// verifyJar checks that path is a readable zip holding the CFR entry point.
func verifyJar(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open jar: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == cfrMainEntry {
			return nil
		}
	}
	return fmt.Errorf("%s not found in %s", cfrMainEntry, filepath.Base(path))
}
