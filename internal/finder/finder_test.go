package finder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/gradle-class-finder/internal/artifact"
	"github.com/mvp-joe/gradle-class-finder/internal/coords"
	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

const fooClass = "com/example/Foo.class"

func newCacheFinder(root, tree string, dedupe bool, opts Options) (*Finder, *fakeTree) {
	q := &fakeTree{text: tree}
	src := &CacheSource{Query: q, Locator: artifact.NewLocator(root), Dedupe: dedupe, Logger: log.Default()}
	return New(src, opts, log.Default()), q
}

func TestFind_SingleCacheMatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cacheJar(t, root, "com.example:lib:1.0", "abc123", fooClass)

	f, _ := newCacheFinder(root, "+--- com.example:lib:1.0\n", true, Options{})
	matches, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "com.example:lib:1.0", m.DependencyCoordinates)
	assert.True(t, filepath.Base(m.JarPath) == "lib-1.0.jar")
	assert.Equal(t, "com.example.Foo", m.ClassName)
	assert.Equal(t, coords.Coordinate{Group: "com.example", Artifact: "lib", Version: "1.0"}, m.Coordinate)
	assert.False(t, m.IsLocal)
	assert.Empty(t, m.SourceJarPath)
}

func TestFind_NoMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cacheJar(t, root, "com.example:lib:1.0", "abc123", "com/example/Bar.class")

	f, _ := newCacheFinder(root, "+--- com.example:lib:1.0\n", true, Options{})
	matches, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestFind_CorruptArchiveIsSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cacheJar(t, root, "com.example:a:1.0", "h1", fooClass)
	bad := cacheJar(t, root, "com.example:b:1.0", "h2", fooClass)
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0644))
	cacheJar(t, root, "com.example:c:1.0", "h3", fooClass)

	tree := "+--- com.example:a:1.0\n+--- com.example:b:1.0\n\\--- com.example:c:1.0\n"
	progress := &recordingProgress{}
	f, _ := newCacheFinder(root, tree, true, Options{})

	matches, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, progress)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "com.example:a:1.0", matches[0].DependencyCoordinates)
	assert.Equal(t, "com.example:c:1.0", matches[1].DependencyCoordinates)

	assert.Equal(t, 3, progress.total)
	assert.Equal(t, []string{"a-1.0.jar", "b-1.0.jar", "c-1.0.jar"}, progress.probed)
	assert.Equal(t, 2, progress.complete)
}

func TestFind_RankingAndDedupe(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, c := range []string{"g:a:1", "g:b:1", "g:c:1"} {
		cacheJar(t, root, c, "h", fooClass)
	}
	tree := "+--- g:a:1\n|    \\--- g:b:1\n\\--- g:c:1\n     \\--- g:b:1\n"

	ranked, _ := newCacheFinder(root, tree, true, Options{})
	matches, err := ranked.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"g:a:1", "g:c:1", "g:b:1"}, coordinatesOf(matches))

	listed, _ := newCacheFinder(root, tree, false, Options{})
	matches, err = listed.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	// Tree order, and the repeated g:b:1 archive is probed once.
	assert.Equal(t, []string{"g:a:1", "g:b:1", "g:c:1"}, coordinatesOf(matches))
}

func TestFind_SourcesJarIsCompanionNotMatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	jar := cacheJar(t, root, "com.example:lib:1.0", "h1", fooClass)
	sources := writeJar(t, filepath.Join(root, "com.example", "lib", "1.0", "h2", "lib-1.0-sources.jar"),
		"com/example/Foo.java", fooClass)

	f, _ := newCacheFinder(root, "+--- com.example:lib:1.0\n", true, Options{})
	matches, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, jar, matches[0].JarPath)
	assert.Equal(t, sources, matches[0].SourceJarPath)
}

func TestFind_MissingCoordinateIsSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cacheJar(t, root, "com.example:lib:1.0", "h", fooClass)

	tree := "+--- org.platform:bom:2.0\n\\--- com.example:lib:1.0\n"
	f, _ := newCacheFinder(root, tree, true, Options{})
	matches, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestFind_LocalAndFlatDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cacheJar(t, root, "com.example:lib:1.0", "h", fooClass)

	ws := filepath.Join(t.TempDir(), "project")
	app := filepath.Join(ws, "app")
	local := filepath.Join(app, "src", "main", "java", "com", "example", "Foo.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0755))
	require.NoError(t, os.WriteFile(local, []byte("package com.example;\nclass Foo {}\n"), 0644))
	vendor := writeJar(t, filepath.Join(app, "libs", "vendor.jar"), fooClass)
	writeJar(t, filepath.Join(app, "libs", "unrelated.jar"), "org/other/Thing.class")

	f, _ := newCacheFinder(root, "+--- com.example:lib:1.0\n", true, Options{LocalSources: true, FlatDirs: true})
	matches, err := f.Find(context.Background(), Query{WorkspaceDir: ws, ClassName: "com.example.Foo", Submodule: "app"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "LOCAL::app", matches[0].DependencyCoordinates)
	assert.Equal(t, local, matches[0].JarPath)
	assert.Equal(t, local, matches[0].SourceJarPath)
	assert.True(t, matches[0].IsLocal)

	assert.Equal(t, "com.example:lib:1.0", matches[1].DependencyCoordinates)

	assert.Equal(t, "FLATDIR::vendor.jar", matches[2].DependencyCoordinates)
	assert.Equal(t, vendor, matches[2].JarPath)
}

func TestFind_LocalModuleNameDefaultsToDirectory(t *testing.T) {
	t.Parallel()

	ws := filepath.Join(t.TempDir(), "my-service")
	local := filepath.Join(ws, "src", "com", "example", "Foo.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0755))
	require.NoError(t, os.WriteFile(local, []byte("class Foo {}"), 0644))

	f, _ := newCacheFinder(t.TempDir(), "", true, Options{LocalSources: true})
	matches, err := f.Find(context.Background(), Query{WorkspaceDir: ws, ClassName: "com.example.Foo"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "LOCAL::my-service", matches[0].DependencyCoordinates)
}

func TestFind_UpstreamFailureAborts(t *testing.T) {
	t.Parallel()

	q := &fakeTree{err: cferrors.New(cferrors.ErrCodeUpstreamQuery, "gradle failed")}
	f := New(&CacheSource{Query: q, Locator: artifact.NewLocator(t.TempDir())}, Options{}, log.Default())

	_, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	require.Error(t, err)
	assert.True(t, cferrors.Is(err, cferrors.ErrCodeUpstreamQuery))
}

func TestFind_InvalidInputRunsNothing(t *testing.T) {
	t.Parallel()

	f, q := newCacheFinder(t.TempDir(), "", true, Options{})
	_, err := f.Find(context.Background(), Query{WorkspaceDir: t.TempDir(), ClassName: "not a class"}, nil)
	require.Error(t, err)
	assert.True(t, cferrors.Is(err, cferrors.ErrCodeInvalidInput))
	assert.Equal(t, 0, q.calls)
}

func TestFind_CanceledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cacheJar(t, root, "com.example:lib:1.0", "h", fooClass)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, _ := newCacheFinder(root, "+--- com.example:lib:1.0\n", true, Options{})
	_, err := f.Find(ctx, Query{WorkspaceDir: t.TempDir(), ClassName: "com.example.Foo"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	file := filepath.Join(ws, "build.gradle")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{"valid", Query{WorkspaceDir: ws, ClassName: "com.example.Foo"}, false},
		{"inner class", Query{WorkspaceDir: ws, ClassName: "com.example.Outer$Inner"}, false},
		{"default package", Query{WorkspaceDir: ws, ClassName: "Foo"}, false},
		{"empty class", Query{WorkspaceDir: ws}, true},
		{"trailing dot", Query{WorkspaceDir: ws, ClassName: "com.example."}, true},
		{"slashes", Query{WorkspaceDir: ws, ClassName: "com/example/Foo"}, true},
		{"leading digit", Query{WorkspaceDir: ws, ClassName: "com.1example.Foo"}, true},
		{"empty workspace", Query{ClassName: "Foo"}, true},
		{"missing workspace", Query{WorkspaceDir: filepath.Join(ws, "nope"), ClassName: "Foo"}, true},
		{"workspace is file", Query{WorkspaceDir: file, ClassName: "Foo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.query)
			if tt.wantErr {
				assert.True(t, cferrors.Is(err, cferrors.ErrCodeInvalidInput), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func coordinatesOf(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.DependencyCoordinates
	}
	return out
}
