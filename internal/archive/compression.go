// Package archive decompresses and extracts the nested ar/tar archive
// format used by .deb packages.
package archive

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/ulikunitz/xz"
)

// Decompress wraps r in a decompressing reader chosen by the extension of
// filename. An unrecognized extension is a fatal error; the caller is
// expected to have already matched filename against a data.tar.* member.
func Decompress(r io.Reader, filename string) (io.Reader, error) {
	switch {
	case strings.HasSuffix(filename, ".zst"):
		return zstd.NewReader(r), nil
	case strings.HasSuffix(filename, ".xz"):
		return xz.NewReader(r)
	case strings.HasSuffix(filename, ".bz2"):
		return bzip2.NewReader(r), nil
	case strings.HasSuffix(filename, ".gz"):
		return gzip.NewReader(r)
	default:
		return nil, fmt.Errorf("unknown compression extension for %q", filename)
	}
}
