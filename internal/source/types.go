// Package source recovers human-readable source for a class, preferring
// original text over decompiled output, and post-processes the result.
package source

// Provenance records which recovery tier produced a text.
type Provenance string

const (
	ProvenanceLocal      Provenance = "LOCAL_SOURCE"
	ProvenanceArchive    Provenance = "SOURCE_ARCHIVE"
	ProvenanceDecompiled Provenance = "DECOMPILED"
	ProvenanceError      Provenance = "ERROR"
)

// Request identifies the class whose source is wanted.
type Request struct {
	// ArchivePath is the jar holding the class, or a .java file for a local
	// match.
	ArchivePath string
	ClassName   string
	// SourceArchivePath is an explicit companion sources jar, if known.
	SourceArchivePath string
	IsLocal           bool
}

// RequestFromPath builds a Request for a caller that only has a path.
// A .java path is treated as a local source file.
func RequestFromPath(path, className string) Request {
	return Request{
		ArchivePath: path,
		ClassName:   className,
		IsLocal:     isSourceFile(path),
	}
}

// Recovered is the outcome of source recovery.
type Recovered struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	ClassName  string     `json:"class_name"`
	// Origin is the file the text was read from (local file, sources jar or
	// decompiled archive).
	Origin string `json:"origin"`
}
