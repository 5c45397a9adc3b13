package artifact

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// localSourceRoots are the module-relative directories searched for
// in-workspace sources, in priority order.
var localSourceRoots = []string{
	"src/main/java",
	"src/main/kotlin",
	"src/java",
	"src",
}

// defaultFlatDirs are always checked in addition to declared flatDir repos.
var defaultFlatDirs = []string{"libs", "lib"}

var quotedString = regexp.MustCompile(`["']([^"']+)["']`)

// ModuleDir returns the directory of the targeted module: the workspace root,
// or the submodule directory when a submodule path ("app" or "libs/core") is
// given.
func ModuleDir(workspaceDir, submodule string) string {
	submodule = strings.Trim(strings.ReplaceAll(submodule, ":", "/"), "/")
	if submodule == "" {
		return workspaceDir
	}
	return filepath.Join(workspaceDir, filepath.FromSlash(submodule))
}

// LocalSources returns every source file for className found in the module's
// conventional source roots.
func LocalSources(moduleDir, className string) []string {
	rel := filepath.FromSlash(SourceEntryName(className))

	var found []string
	for _, root := range localSourceRoots {
		candidate := filepath.Join(moduleDir, filepath.FromSlash(root), rel)
		if isFile(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

// FlatDirs returns the existing flat-directory repositories of a module: the
// dirs declared in build.gradle / build.gradle.kts plus libs/ and lib/.
// Relative paths resolve against the module directory.
func FlatDirs(workspaceDir, moduleDir string) []string {
	var declared []string
	for _, name := range []string{"build.gradle", "build.gradle.kts"} {
		if dirs, err := parseFlatDirs(filepath.Join(moduleDir, name)); err == nil {
			declared = dirs
			break
		}
	}

	replacer := strings.NewReplacer(
		"${rootProject.projectDir.path}", workspaceDir,
		"${rootProject.projectDir}", workspaceDir,
		"${rootDir}", workspaceDir,
		"$rootDir", workspaceDir,
		"${projectDir}", moduleDir,
		"$projectDir", moduleDir,
	)

	seen := make(map[string]bool)
	var out []string
	for _, dir := range append(declared, defaultFlatDirs...) {
		dir = replacer.Replace(strings.TrimSpace(dir))
		if dir == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(moduleDir, filepath.FromSlash(dir))
		}
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

// parseFlatDirs extracts flatDir directories from a build script. Both the
// one-line (`flatDir { dirs 'libs' }`, `flatDir dirs: ['a', 'b']`) and the
// block form spanning several lines are recognised; this is a line scanner,
// not a Groovy/Kotlin parser.
func parseFlatDirs(buildFile string) ([]string, error) {
	f, err := os.Open(buildFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var dirs []string
	inBlock := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "flatDir") {
			inBlock = true
		}
		if !inBlock {
			continue
		}
		if i := strings.Index(line, "dirs"); i >= 0 {
			for _, m := range quotedString.FindAllStringSubmatch(line[i:], -1) {
				dirs = append(dirs, m[1])
			}
		}
		if strings.Contains(line, "}") || (strings.Contains(line, "dirs") && !strings.Contains(line, "{")) {
			inBlock = false
		}
	}
	return dirs, scanner.Err()
}

// FlatDirJars lists the binary archives directly inside the given directories.
func FlatDirJars(dirs []string) []string {
	var jars []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ArchiveExt) || IsSourceArchive(name) {
				continue
			}
			jars = append(jars, filepath.Join(dir, name))
		}
	}
	sort.Strings(jars)
	return jars
}
