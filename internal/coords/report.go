package coords

import (
	"bytes"
	"encoding/json"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// ReportEntry is one record of the structured helper report. Field names
// follow the helper's JSON output.
type ReportEntry struct {
	JarPath               string `json:"jarPath"`
	SourceJarPath         string `json:"sourceJarPath,omitempty"`
	DependencyCoordinates string `json:"dependencyCoordinates"`
	ClassName             string `json:"className"`
	IsLocal               bool   `json:"isLocal"`
}

// Coordinate parses DependencyCoordinates. Local and flat-directory entries
// ("LOCAL::app", "FLATDIR::x.jar") do not carry a coordinate.
func (e ReportEntry) Coordinate() (Coordinate, bool) {
	c, err := ParseCoordinate(e.DependencyCoordinates)
	if err != nil {
		return Coordinate{}, false
	}
	return c, true
}

// ParseReport decodes the helper's JSON array. Log lines around the array
// (the helper prints progress on some Gradle versions, often as "[INFO] ...")
// are skipped: the array is the last line beginning with '[' from which a
// JSON array decodes.
func ParseReport(data []byte) ([]ReportEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var entries []ReportEntry
	err := json.Unmarshal(data, &entries)
	if err == nil {
		return entries, nil
	}

	starts := arrayLineStarts(data)
	for i := len(starts) - 1; i >= 0; i-- {
		// Decode reads one value, so trailing log lines are ignored.
		var candidate []ReportEntry
		if json.NewDecoder(bytes.NewReader(data[starts[i]:])).Decode(&candidate) == nil {
			return candidate, nil
		}
	}
	return nil, cferrors.Wrap(cferrors.ErrCodeUpstreamQuery, err, "unparseable helper report")
}

// arrayLineStarts returns the offsets of lines whose first non-blank byte is '['.
func arrayLineStarts(data []byte) []int {
	var starts []int
	for off := 0; off < len(data); {
		line := data[off:]
		next := len(data)
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
			next = off + nl + 1
		}
		trimmed := bytes.TrimLeft(line, " \t")
		if len(trimmed) > 0 && trimmed[0] == '[' {
			starts = append(starts, off+len(line)-len(trimmed))
		}
		off = next
	}
	return starts
}
