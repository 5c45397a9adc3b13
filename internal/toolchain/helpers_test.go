package toolchain

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
}

// writeScript creates an executable shell script at path.
func writeScript(t *testing.T, path, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// fakeJavaHome creates home/bin/java running body.
func fakeJavaHome(t *testing.T, body string) string {
	t.Helper()
	home := t.TempDir()
	writeScript(t, filepath.Join(home, "bin", "java"), body)
	return home
}

// cfrJarBytes returns a minimal jar that passes verifyJar.
func cfrJarBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(cfrMainEntry)
	require.NoError(t, err)
	_, err = w.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// isolateRuntime clears JAVA_HOME and hides java on PATH for the test.
func isolateRuntime(t *testing.T) {
	t.Helper()
	t.Setenv("JAVA_HOME", "")
	original := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Cleanup(func() { lookPath = original })
}
