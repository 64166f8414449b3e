package install

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blakesmith/ar"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/sysroot-tools/sysroot-bootstrap/internal/control"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/fetch"
)

func buildFakeDeb(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0o644}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write(tarBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var arBuf bytes.Buffer
	aw := ar.NewWriter(&arBuf)
	require.NoError(t, aw.WriteGlobalHeader())
	require.NoError(t, aw.WriteHeader(&ar.Header{
		Name: "data.tar.gz", Size: int64(gzBuf.Len()), Mode: 0o644, ModTime: time.Now(),
	}))
	_, err = aw.Write(gzBuf.Bytes())
	require.NoError(t, err)

	return arBuf.Bytes()
}

func TestInstallAllUnpacksIntoSysroot(t *testing.T) {
	debBytes := buildFakeDeb(t, map[string]string{"usr/bin/tool": "binary"})
	sum := sha256.Sum256(debBytes)
	expected := hex.EncodeToString(sum[:])

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(debBytes)
	}))
	defer srv.Close()

	packagesDoc := "Package: tool\nFilename: pool/tool.deb\nSHA256: " + expected + "\n"
	idx, err := control.ParsePackages(strings.NewReader(packagesDoc))
	require.NoError(t, err)

	sysroot := t.TempDir()
	ins := &Installer{
		Mirror:      srv.URL,
		Fetcher:     fetch.New(t.TempDir()),
		Packages:    idx,
		SysrootRoot: sysroot,
	}

	log := logrus.New()
	log.SetOutput(testWriter{t})

	require.NoError(t, ins.InstallAll(context.Background(), []string{"tool"}, log))

	data, err := os.ReadFile(filepath.Join(sysroot, "usr/bin/tool"))
	require.NoError(t, err)
	require.Equal(t, "binary", string(data))
}

func TestInstallAllChecksumMismatch(t *testing.T) {
	debBytes := buildFakeDeb(t, map[string]string{"usr/bin/tool": "binary"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(debBytes)
	}))
	defer srv.Close()

	packagesDoc := "Package: tool\nFilename: pool/tool.deb\nSHA256: " + strings.Repeat("0", 64) + "\n"
	idx, err := control.ParsePackages(strings.NewReader(packagesDoc))
	require.NoError(t, err)

	ins := &Installer{
		Mirror:      srv.URL,
		Fetcher:     fetch.New(t.TempDir()),
		Packages:    idx,
		SysrootRoot: t.TempDir(),
	}

	log := logrus.New()
	log.SetOutput(testWriter{t})

	err = ins.InstallAll(context.Background(), []string{"tool"}, log)
	require.Error(t, err)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) { return len(p), nil }
