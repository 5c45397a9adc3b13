package coords

import "strings"

const (
	treeMarker = "---"
	arrow      = " -> "

	// Gradle indents every tree level by five columns ("|    " or "     ").
	levelWidth = 5
)

// Parse extracts every coordinate from dependency-tree text, in input order.
// Duplicates (the same dependency reached through several paths, or listed by
// several configurations) are preserved.
func Parse(text string) []Coordinate {
	var out []Coordinate
	for _, line := range strings.Split(text, "\n") {
		if c, _, ok := parseLine(line); ok {
			out = append(out, c)
		}
	}
	return out
}

// parseLine parses one tree line. It returns the coordinate, the nesting
// depth derived from the marker column, and whether the line was accepted.
func parseLine(line string) (Coordinate, int, bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.Contains(line, ":") {
		return Coordinate{}, 0, false
	}
	idx := strings.LastIndex(line, treeMarker)
	if idx < 0 {
		return Coordinate{}, 0, false
	}

	depth := 0
	if idx > 0 {
		depth = (idx - 1) / levelWidth
	}

	rest := strings.TrimSpace(line[idx+len(treeMarker):])
	if strings.HasPrefix(rest, "project ") {
		// Inter-project dependency (":core"), not a cached artifact.
		return Coordinate{}, 0, false
	}

	rest = resolveArrow(rest)

	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		rest = rest[:sp]
	}

	parts := strings.Split(rest, ":")
	if len(parts) < 3 {
		return Coordinate{}, 0, false
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[len(parts)-1]}
	if c.Group == "" || c.Artifact == "" || c.Version == "" {
		return Coordinate{}, 0, false
	}
	return c, depth, true
}

// resolveArrow collapses a version-resolution arrow to the resolved side.
// Gradle prints either a full coordinate ("a:b:1.0 -> a:b:2.0") or only the
// winning version ("a:b:1.0 -> 2.0", "a:b -> 2.0"); in the latter case the
// version replaces (or completes) the requested one.
func resolveArrow(s string) string {
	i := strings.Index(s, arrow)
	if i < 0 {
		return s
	}
	left := strings.TrimSpace(s[:i])
	right := strings.TrimSpace(s[i+len(arrow):])
	if sp := strings.IndexByte(right, ' '); sp >= 0 {
		right = right[:sp]
	}
	if strings.Contains(right, ":") {
		return right
	}

	parts := strings.Split(left, ":")
	switch {
	case len(parts) >= 3:
		parts[len(parts)-1] = right
	case len(parts) == 2:
		parts = append(parts, right)
	default:
		return right
	}
	return strings.Join(parts, ":")
}
