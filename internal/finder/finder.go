// Package finder answers "which archives in this project's dependency
// closure contain class X". It combines the workspace's own sources, the
// artifacts named by the dependency tree, and flat-directory jars.
package finder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/gradle-class-finder/internal/artifact"
	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// Options toggles the supplementary search locations.
type Options struct {
	LocalSources bool
	FlatDirs     bool
}

// Finder locates the archives that contain a class.
type Finder struct {
	source CandidateSource
	opts   Options
	logger *log.Logger
}

// New creates a Finder over a candidate source.
func New(source CandidateSource, opts Options, logger *log.Logger) *Finder {
	if logger == nil {
		logger = log.Default()
	}
	return &Finder{source: source, opts: opts, logger: logger}
}

// Validate checks a query before any subprocess runs.
func Validate(q Query) error {
	if q.ClassName == "" {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "class_name is required")
	}
	if !classNamePattern.MatchString(q.ClassName) {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "%q is not a fully-qualified class name", q.ClassName)
	}
	if q.WorkspaceDir == "" {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "workspace_dir is required")
	}
	info, err := os.Stat(q.WorkspaceDir)
	if err != nil || !info.IsDir() {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "workspace %s is not a directory", q.WorkspaceDir)
	}
	return nil
}

// Find returns every match for q, local sources first, then dependency
// archives in rank order, then flat-directory jars. No match is not an
// error. Unreadable archives are logged and skipped.
func (f *Finder) Find(ctx context.Context, q Query, progress ProgressReporter) ([]Match, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = NoOpProgressReporter{}
	}

	moduleDir := artifact.ModuleDir(q.WorkspaceDir, q.Submodule)
	var candidates []Candidate

	if f.opts.LocalSources {
		moduleName := strings.Trim(strings.ReplaceAll(q.Submodule, "/", ":"), ":")
		if moduleName == "" {
			moduleName = filepath.Base(moduleDir)
		}
		for _, path := range artifact.LocalSources(moduleDir, q.ClassName) {
			candidates = append(candidates, Candidate{
				Display:           LocalPrefix + moduleName,
				ArchivePath:       path,
				SourceArchivePath: path,
				IsLocal:           true,
			})
		}
	}

	deps, err := f.source.Candidates(ctx, q)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, deps...)

	if f.opts.FlatDirs {
		for _, jar := range artifact.FlatDirJars(artifact.FlatDirs(q.WorkspaceDir, moduleDir)) {
			candidates = append(candidates, Candidate{
				Display:     FlatDirPrefix + filepath.Base(jar),
				ArchivePath: jar,
			})
		}
	}

	candidates = uniqueProbeTargets(candidates)
	progress.OnProbeStart(len(candidates))

	matches := []Match{}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok := f.probe(c, q.ClassName)
		progress.OnProbed(c.ArchivePath, ok)
		if !ok {
			continue
		}

		m := Match{
			DependencyCoordinates: c.display(),
			JarPath:               c.ArchivePath,
			SourceJarPath:         c.SourceArchivePath,
			ClassName:             q.ClassName,
			IsLocal:               c.IsLocal,
			Coordinate:            c.Coordinate,
		}
		if m.SourceJarPath == "" {
			m.SourceJarPath = artifact.CompanionSource(c.ArchivePath)
		}
		matches = append(matches, m)
	}

	progress.OnProbeComplete(len(matches))
	f.logger.Debug("class search complete", "class", q.ClassName, "candidates", len(candidates), "matches", len(matches))
	return matches, nil
}

func (f *Finder) probe(c Candidate, className string) bool {
	if c.IsLocal {
		return true
	}
	ok, err := artifact.Contains(c.ArchivePath, className)
	if err != nil {
		f.logger.Warn("skipping unreadable archive", "path", c.ArchivePath, "err", err)
		return false
	}
	return ok
}

// uniqueProbeTargets drops source archives and repeated archive paths,
// keeping the first occurrence.
func uniqueProbeTargets(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if !c.IsLocal && artifact.IsSourceArchive(c.ArchivePath) {
			continue
		}
		key := filepath.Clean(c.ArchivePath)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
