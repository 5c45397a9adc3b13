package finder

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/gradle-class-finder/internal/coords"
)

type fakeTree struct {
	text  string
	err   error
	calls int
}

func (f *fakeTree) Tree(_ context.Context, _, _ string) (*coords.Tree, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return coords.ParseTree(f.text), nil
}

type fakeReport struct {
	entries []coords.ReportEntry
	err     error
}

func (f *fakeReport) Report(_ context.Context, _, _, _ string) ([]coords.ReportEntry, error) {
	return f.entries, f.err
}

// recordingProgress captures progress callbacks.
type recordingProgress struct {
	total    int
	probed   []string
	complete int
}

func (r *recordingProgress) OnProbeStart(total int) { r.total = total }
func (r *recordingProgress) OnProbed(path string, _ bool) {
	r.probed = append(r.probed, filepath.Base(path))
}
func (r *recordingProgress) OnProbeComplete(matches int) { r.complete = matches }

func writeJar(t *testing.T, path string, entries ...string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// cacheJar writes a jar at root/group/artifact/version/<bucket>/<artifact>-<version>.jar.
func cacheJar(t *testing.T, root, coordinate, bucket string, entries ...string) string {
	t.Helper()
	parts := strings.Split(coordinate, ":")
	require.Len(t, parts, 3)
	name := parts[1] + "-" + parts[2] + ".jar"
	return writeJar(t, filepath.Join(root, parts[0], parts[1], parts[2], bucket, name), entries...)
}
