package finder

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/gradle-class-finder/internal/artifact"
	"github.com/mvp-joe/gradle-class-finder/internal/coords"
)

// CandidateSource lists archives that may contain the queried class.
type CandidateSource interface {
	Candidates(ctx context.Context, q Query) ([]Candidate, error)
}

// TreeQuerier returns a project's resolved dependency tree.
type TreeQuerier interface {
	Tree(ctx context.Context, workspaceDir, submodule string) (*coords.Tree, error)
}

// ReportQuerier returns the structured helper report for a class.
type ReportQuerier interface {
	Report(ctx context.Context, workspaceDir, className, submodule string) ([]coords.ReportEntry, error)
}

// CacheSource resolves the dependency tree and maps each coordinate to the
// archives stored for it in the module cache.
type CacheSource struct {
	Query   TreeQuerier
	Locator *artifact.Locator
	// Dedupe collapses repeated coordinates and orders them direct
	// dependencies first. Without it every tree line is searched in order.
	Dedupe bool
	Logger *log.Logger
}

// Candidates implements CandidateSource.
func (s *CacheSource) Candidates(ctx context.Context, q Query) ([]Candidate, error) {
	tree, err := s.Query.Tree(ctx, q.WorkspaceDir, q.Submodule)
	if err != nil {
		return nil, err
	}

	deps := tree.All()
	if s.Dedupe {
		deps = tree.Ranked()
	}
	s.logger().Debug("dependencies resolved", "count", len(deps), "unique", tree.Len())

	var out []Candidate
	for _, c := range deps {
		archives, err := s.Locator.Locate(c)
		if err != nil {
			s.logger().Warn("failed to search cache", "coordinate", c.FullName(), "err", err)
			continue
		}
		if len(archives) == 0 {
			s.logger().Debug("coordinate not in cache", "coordinate", c.FullName())
			continue
		}
		for _, a := range archives {
			out = append(out, Candidate{Coordinate: c, ArchivePath: a})
		}
	}
	return out, nil
}

func (s *CacheSource) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// ReportSource uses the helper's structured report, which already carries
// archive and source archive paths.
type ReportSource struct {
	Query ReportQuerier
	// CacheRoot recovers coordinates for entries that lack parseable ones.
	CacheRoot string
}

// Candidates implements CandidateSource.
func (s *ReportSource) Candidates(ctx context.Context, q Query) ([]Candidate, error) {
	entries, err := s.Query.Report(ctx, q.WorkspaceDir, q.ClassName, q.Submodule)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if e.JarPath == "" {
			continue
		}
		c, ok := e.Coordinate()
		if !ok && !e.IsLocal && s.CacheRoot != "" {
			c, _ = artifact.CoordinateFromPath(s.CacheRoot, e.JarPath)
		}
		display := e.DependencyCoordinates
		if display == "" && c.IsZero() {
			display = FlatDirPrefix + filepath.Base(e.JarPath)
		}
		out = append(out, Candidate{
			Coordinate:        c,
			Display:           display,
			ArchivePath:       e.JarPath,
			SourceArchivePath: e.SourceJarPath,
			IsLocal:           e.IsLocal,
		})
	}
	return out, nil
}
