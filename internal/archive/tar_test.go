package archive

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTarRegularAndDir(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "usr/bin/", Typeflag: tar.TypeDir, Mode: 0o755}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "usr/bin/tool", Typeflag: tar.TypeReg, Mode: 0o755, Size: 5}))
	_, err := tw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	dest := t.TempDir()
	require.NoError(t, ExtractTar(&buf, dest))

	data, err := os.ReadFile(filepath.Join(dest, "usr/bin/tool"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestExtractTarSymlink(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "lib", Typeflag: tar.TypeSymlink, Linkname: "/usr/lib", Mode: 0o777}))
	require.NoError(t, tw.Close())

	dest := t.TempDir()
	require.NoError(t, ExtractTar(&buf, dest))

	target, err := os.Readlink(filepath.Join(dest, "lib"))
	require.NoError(t, err)
	require.Equal(t, "/usr/lib", target)
}
