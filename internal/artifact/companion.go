package artifact

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// CompanionSource derives the source archive that accompanies a binary
// archive. The conventional sibling (lib-1.0.jar -> lib-1.0-sources.jar) is
// tried first; the Gradle cache keeps sources in a different hash bucket, so
// sibling buckets of the version directory are searched next. A classifier
// archive (lib-1.0-linux.jar) falls back to the coordinate's main sources
// archive (lib-1.0-sources.jar). Returns "" when no companion exists.
func CompanionSource(archivePath string) string {
	if IsSourceArchive(archivePath) || !strings.HasSuffix(archivePath, ArchiveExt) {
		return ""
	}

	names := companionNames(archivePath)
	dir := filepath.Dir(archivePath)
	for _, name := range names {
		if sibling := filepath.Join(dir, name); isFile(sibling) {
			return sibling
		}
	}

	versionDir := filepath.Dir(dir)
	pattern, err := bucketPattern(names)
	if err != nil {
		return ""
	}
	buckets, err := os.ReadDir(versionDir)
	if err != nil {
		return ""
	}

	found := make(map[string][]string)
	for _, b := range buckets {
		if !b.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(versionDir, b.Name()))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !pattern.Match(b.Name()+"/"+e.Name()) {
				continue
			}
			found[e.Name()] = append(found[e.Name()], filepath.Join(versionDir, b.Name(), e.Name()))
		}
	}

	for _, name := range names {
		if paths := found[name]; len(paths) > 0 {
			sort.Strings(paths)
			return paths[0]
		}
	}
	return ""
}

// companionNames lists acceptable source archive names, best first. The
// shared name is added only for archives stored as
// <artifact>/<version>/<bucket>/<artifact>-<version>-<classifier>.jar.
func companionNames(archivePath string) []string {
	base := strings.TrimSuffix(filepath.Base(archivePath), ArchiveExt)
	names := []string{base + SourceArchiveExt}

	versionDir := filepath.Dir(filepath.Dir(archivePath))
	stem := filepath.Base(filepath.Dir(versionDir)) + "-" + filepath.Base(versionDir)
	if strings.HasPrefix(base, stem+"-") {
		names = append(names, stem+SourceArchiveExt)
	}
	return names
}

// bucketPattern matches any of names one hash-bucket level below the
// version directory.
func bucketPattern(names []string) (glob.Glob, error) {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		// ',' separates alternatives and cannot be quoted inside braces.
		if strings.Contains(n, ",") {
			continue
		}
		quoted = append(quoted, glob.QuoteMeta(n))
	}
	switch len(quoted) {
	case 0:
		return glob.Compile("*/"+glob.QuoteMeta(names[0]), '/')
	case 1:
		return glob.Compile("*/"+quoted[0], '/')
	}
	return glob.Compile("*/{"+strings.Join(quoted, ",")+"}", '/')
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
