package bootstrap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerRoutesInfoAndErrorSeparately(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewLogger(&stdout, &stderr)

	log.Info("resolved packages")
	log.Error("checksum mismatch")

	require.True(t, strings.HasPrefix(stdout.String(), "[+] resolved packages"))
	require.True(t, strings.HasPrefix(stderr.String(), "[!] checksum mismatch"))
	require.NotContains(t, stdout.String(), "[!]")
	require.NotContains(t, stderr.String(), "[+]")
}
