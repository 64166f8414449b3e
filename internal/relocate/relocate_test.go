package relocate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelocateRewritesAbsoluteSymlink(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "usr/lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "usr/lib/libc.so.6"), []byte("lib"), 0o644))
	require.NoError(t, os.Symlink("/usr/lib/libc.so.6", filepath.Join(root, "usr/lib/libc.so")))

	require.NoError(t, Relocate(root))

	target, err := os.Readlink(filepath.Join(root, "usr/lib/libc.so"))
	require.NoError(t, err)
	require.False(t, filepath.IsAbs(target))

	resolved := filepath.Join(root, "usr/lib", target)
	data, err := os.ReadFile(resolved)
	require.NoError(t, err)
	require.Equal(t, "lib", string(data))
}

func TestRelocateLeavesRelativeSymlinkAlone(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "usr/lib"), 0o755))
	require.NoError(t, os.Symlink("../lib/other", filepath.Join(root, "usr/lib/already-relative")))

	require.NoError(t, Relocate(root))

	target, err := os.Readlink(filepath.Join(root, "usr/lib/already-relative"))
	require.NoError(t, err)
	require.Equal(t, "../lib/other", target)
}
