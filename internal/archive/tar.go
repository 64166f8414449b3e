package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExtractTar unpacks a POSIX tar stream into dest, preserving file modes,
// ownership (best-effort, swallowing EPERM when unprivileged) and symbolic
// links verbatim. Relocation of absolute symlinks happens afterwards, in
// internal/relocate.
func ExtractTar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}

		target := filepath.Join(dest, filepath.Clean("/"+hdr.Name))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return fmt.Errorf("creating dir %q: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating parent of %q: %w", hdr.Name, err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return fmt.Errorf("creating file %q: %w", hdr.Name, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return fmt.Errorf("writing file %q: %w", hdr.Name, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing file %q: %w", hdr.Name, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating parent of %q: %w", hdr.Name, err)
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink %q -> %q: %w", hdr.Name, hdr.Linkname, err)
			}
		case tar.TypeLink:
			linkTarget := filepath.Join(dest, filepath.Clean("/"+hdr.Linkname))
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating parent of %q: %w", hdr.Name, err)
			}
			os.Remove(target)
			if err := os.Link(linkTarget, target); err != nil {
				return fmt.Errorf("creating hardlink %q -> %q: %w", hdr.Name, hdr.Linkname, err)
			}
		default:
			// device nodes, fifos etc: skip, a sysroot has no use for them
			// and creating them usually requires privilege we don't have.
			continue
		}

		if err := os.Lchown(target, hdr.Uid, hdr.Gid); err != nil && !os.IsPermission(err) {
			// best-effort: ownership mapping without privilege is expected
			// to fail under a normal user; only surface unexpected errors.
			return fmt.Errorf("chown %q: %w", hdr.Name, err)
		}
	}
	return nil
}
