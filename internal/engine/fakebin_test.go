package engine

import (
	"os"
	"path/filepath"
	"testing"
)

// installFakeBin writes an executable shell script into dir so engine
// probing and invocation can be exercised without the real speech tools.
func installFakeBin(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil { //nolint:gosec
		t.Fatal(err)
	}
}

// fakePath points PATH at a directory of fake binaries for the duration of
// the test.
func fakePath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}
