// Package artifact maps dependency coordinates to archives on disk and tests
// archives for class membership.
//
// The Gradle module cache stores each artifact under
// <root>/<group>/<artifact>/<version>/<sha1>/<file>; the number of hash-bucket
// directories between the version directory and the file is not assumed, so
// lookups walk the version directory recursively and keep every .jar.
package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/gradle-class-finder/internal/coords"
)

const (
	ArchiveExt       = ".jar"
	SourceArchiveExt = "-sources.jar"

	// CacheLayout is the module-cache location relative to the Gradle user home.
	CacheLayout = "caches/modules-2/files-2.1"
)

// CacheRoot returns the module-cache root. An explicit override wins;
// otherwise the layout is appended to the Gradle user home.
func CacheRoot(override, gradleUserHome string) string {
	if override != "" {
		return override
	}
	return filepath.Join(gradleUserHome, filepath.FromSlash(CacheLayout))
}

// Locator finds candidate archives for a coordinate under a cache root.
type Locator struct {
	root string
}

// NewLocator creates a locator rooted at the module cache.
func NewLocator(cacheRoot string) *Locator {
	return &Locator{root: cacheRoot}
}

// Root returns the cache root the locator searches.
func (l *Locator) Root() string {
	return l.root
}

// Locate returns every archive below root/group/artifact/version, sorted.
// A coordinate without a cache directory yields no candidates and no error:
// platform and BOM entries never materialise an archive.
func (l *Locator) Locate(c coords.Coordinate) ([]string, error) {
	dir := filepath.Join(l.root, c.Group, c.Artifact, c.Version)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var found []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable bucket directories are skipped, not fatal.
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ArchiveExt) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// IsSourceArchive reports whether path names a companion source archive.
func IsSourceArchive(path string) bool {
	return strings.HasSuffix(path, SourceArchiveExt)
}

// CoordinateFromPath recovers the coordinate of an archive stored in the
// module cache from its path. It returns false for archives outside root.
func CoordinateFromPath(root, archivePath string) (coords.Coordinate, bool) {
	rel, err := filepath.Rel(root, archivePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return coords.Coordinate{}, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 4 {
		return coords.Coordinate{}, false
	}
	return coords.Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}, true
}
