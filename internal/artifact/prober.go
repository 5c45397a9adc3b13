package artifact

import (
	"archive/zip"
	"strings"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// EntryName converts a dotted class name to its archive entry path.
//
//	com.example.Foo -> com/example/Foo.class
func EntryName(className string) string {
	return strings.ReplaceAll(className, ".", "/") + ".class"
}

// SourceEntryName converts a dotted class name to its source entry path.
func SourceEntryName(className string) string {
	return strings.ReplaceAll(className, ".", "/") + ".java"
}

// Contains reports whether the archive holds the compiled class. Only the
// central directory is read; the handle is closed before returning. Corrupt,
// partial or unreadable archives return an ARCHIVE_UNREADABLE error, which
// callers treat as "does not contain".
func Contains(archivePath, className string) (bool, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return false, cferrors.Wrap(cferrors.ErrCodeArchiveUnreadable, err, "open %s", archivePath)
	}
	defer r.Close()

	entry := EntryName(className)
	for _, f := range r.File {
		if f.Name == entry {
			return true, nil
		}
	}
	return false, nil
}
