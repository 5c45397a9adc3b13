// Package coords turns build-tool dependency listings into structured
// group/artifact/version coordinates.
//
// Two upstream shapes are supported: the human-readable dependency tree
// printed by `gradle dependencies` (Parse, ParseTree) and the structured
// JSON report emitted by the tooling-API helper (ParseReport). Parsing of the
// tree is best-effort: lines that do not look like a coordinate are skipped
// rather than reported, because the report format is not contractually
// stable across Gradle versions.
package coords

import (
	"fmt"
	"strings"
)

// Coordinate identifies a resolved dependency. It is a value type; copies are
// independent and nothing mutates a Coordinate after parsing.
type Coordinate struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

// FullName returns the canonical "group:artifact:version" form.
func (c Coordinate) FullName() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

func (c Coordinate) String() string {
	return c.FullName()
}

// IsZero reports whether c is the zero coordinate.
func (c Coordinate) IsZero() bool {
	return c == Coordinate{}
}

// ParseCoordinate parses a single "group:artifact:version" string. Extra
// segments between artifact and version (type, classifier) are ignored; the
// last segment is always the version.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: want group:artifact:version", s)
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[len(parts)-1]}
	if c.Group == "" || c.Artifact == "" || c.Version == "" {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: empty component", s)
	}
	return c, nil
}
