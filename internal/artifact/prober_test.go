package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

func TestEntryName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "com/example/Foo.class", EntryName("com.example.Foo"))
	assert.Equal(t, "com/example/Outer$Inner.class", EntryName("com.example.Outer$Inner"))
	assert.Equal(t, "com/example/Foo.java", SourceEntryName("com.example.Foo"))
}

func TestContains(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jar := filepath.Join(dir, "lib-1.0.jar")
	writeJar(t, jar, map[string]string{
		"META-INF/MANIFEST.MF":      "Manifest-Version: 1.0\n",
		"com/example/Foo.class":     "\xca\xfe\xba\xbe",
		"com/example/sub/Bar.class": "\xca\xfe\xba\xbe",
	})

	tests := []struct {
		className string
		want      bool
	}{
		{"com.example.Foo", true},
		{"com.example.sub.Bar", true},
		{"com.example.Bar", false},
		{"example.Foo", false},
		{"com.example.Foo.class", false},
	}

	for _, tt := range tests {
		t.Run(tt.className, func(t *testing.T) {
			got, err := Contains(jar, tt.className)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContains_CorruptArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	corrupt := filepath.Join(dir, "partial.jar")
	require.NoError(t, os.WriteFile(corrupt, []byte("PK\x03\x04 truncated download"), 0644))

	got, err := Contains(corrupt, "com.example.Foo")
	assert.False(t, got)
	require.Error(t, err)
	assert.True(t, cferrors.Is(err, cferrors.ErrCodeArchiveUnreadable))
}

func TestContains_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := Contains(filepath.Join(t.TempDir(), "missing.jar"), "com.example.Foo")
	assert.False(t, got)
	assert.True(t, cferrors.Is(err, cferrors.ErrCodeArchiveUnreadable))
}
