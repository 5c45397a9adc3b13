package finder

import (
	"regexp"

	"github.com/mvp-joe/gradle-class-finder/internal/coords"
)

const (
	// LocalPrefix marks matches found in the workspace's own sources.
	LocalPrefix = "LOCAL::"
	// FlatDirPrefix marks matches found in flat-directory repositories.
	FlatDirPrefix = "FLATDIR::"
)

var classNamePattern = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)*$`)

// Query is one find request.
type Query struct {
	WorkspaceDir string
	ClassName    string
	// Submodule is optional, as "app", "libs/core" or ":libs:core".
	Submodule string
}

// Match is an archive (or local source file) containing the class.
type Match struct {
	DependencyCoordinates string `json:"dependency_coordinates"`
	JarPath               string `json:"jar_path"`
	SourceJarPath         string `json:"source_jar_path,omitempty"`
	ClassName             string `json:"class_name"`
	IsLocal               bool   `json:"is_local,omitempty"`

	// Coordinate is zero for local and flat-directory matches.
	Coordinate coords.Coordinate `json:"-"`
}

// Candidate is an archive that may contain the class.
type Candidate struct {
	Coordinate coords.Coordinate
	// Display overrides Coordinate.FullName() in the resulting match.
	Display           string
	ArchivePath       string
	SourceArchivePath string
	// IsLocal candidates are source files and are not probed.
	IsLocal bool
}

func (c Candidate) display() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Coordinate.FullName()
}
