package source

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/gradle-class-finder/internal/artifact"
	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
	"github.com/mvp-joe/gradle-class-finder/internal/toolchain"
)

// Strategy is one recovery tier. Recover returns ok=false with a nil error
// when the tier does not apply to the request.
type Strategy interface {
	Name() Provenance
	Recover(ctx context.Context, req Request) (text, origin string, ok bool, err error)
}

// LocalStrategy reads a source file from the workspace.
type LocalStrategy struct{}

func (LocalStrategy) Name() Provenance { return ProvenanceLocal }

func (LocalStrategy) Recover(_ context.Context, req Request) (string, string, bool, error) {
	if !req.IsLocal || !isSourceFile(req.ArchivePath) {
		return "", "", false, nil
	}
	data, err := os.ReadFile(req.ArchivePath)
	if err != nil {
		return "", "", false, cferrors.Wrap(cferrors.ErrCodeNotFound, err, "read local source %s", req.ArchivePath)
	}
	return string(data), req.ArchivePath, true, nil
}

// isSourceFile reports whether path names a Java source file rather than an
// archive.
func isSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".java")
}

// ArchiveStrategy reads the class's .java entry from a companion sources jar.
type ArchiveStrategy struct{}

func (ArchiveStrategy) Name() Provenance { return ProvenanceArchive }

func (ArchiveStrategy) Recover(_ context.Context, req Request) (string, string, bool, error) {
	sourceJar := req.SourceArchivePath
	if sourceJar == "" || sourceJar == req.ArchivePath {
		sourceJar = artifact.CompanionSource(req.ArchivePath)
	}
	if sourceJar == "" || !strings.HasSuffix(sourceJar, ".jar") {
		return "", "", false, nil
	}

	text, ok, err := readSourceEntry(sourceJar, req.ClassName)
	if err != nil || !ok {
		return "", "", false, err
	}
	return text, sourceJar, true, nil
}

// readSourceEntry returns the first entry whose name ends with the class's
// source path. Suffix matching tolerates jars that nest sources under a
// prefix directory.
func readSourceEntry(jarPath, className string) (string, bool, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return "", false, cferrors.Wrap(cferrors.ErrCodeArchiveUnreadable, err, "open %s", jarPath)
	}
	defer r.Close()

	want := artifact.SourceEntryName(className)
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, want) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", false, cferrors.Wrap(cferrors.ErrCodeArchiveUnreadable, err, "open %s in %s", f.Name, jarPath)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", false, cferrors.Wrap(cferrors.ErrCodeArchiveUnreadable, err, "read %s in %s", f.Name, jarPath)
		}
		if !utf8.Valid(data) {
			data = []byte(strings.ToValidUTF8(string(data), "�"))
		}
		return string(data), true, nil
	}
	return "", false, nil
}

// DecompileStrategy runs the decompiler on the class inside the archive.
type DecompileStrategy struct {
	Decompiler toolchain.Decompiler
}

func (DecompileStrategy) Name() Provenance { return ProvenanceDecompiled }

// Recover applies only to binary archives.
func (s DecompileStrategy) Recover(ctx context.Context, req Request) (string, string, bool, error) {
	if !strings.HasSuffix(req.ArchivePath, artifact.ArchiveExt) {
		return "", "", false, nil
	}
	if s.Decompiler == nil {
		return "", "", false, cferrors.New(cferrors.ErrCodeToolchainMissing, "no decompiler available")
	}
	text, err := s.Decompiler.Decompile(ctx, req.ArchivePath, req.ClassName)
	if err != nil {
		return "", "", false, err
	}
	return text, req.ArchivePath, true, nil
}
