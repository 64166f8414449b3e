// Package relocate rewrites absolute symlinks in a sysroot to relative
// form, so the tree can be moved or chrooted without becoming self-
// referential through the host filesystem (spec §4.H).
package relocate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Relocate walks root and rewrites every symlink whose target is absolute
// (begins with "/") into an equivalent relative target. Symlinks that are
// already relative are left untouched.
func Relocate(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return nil
		}

		target, err := os.Readlink(path)
		if err != nil {
			return fmt.Errorf("reading link %q: %w", path, err)
		}
		if !strings.HasPrefix(target, "/") {
			return nil
		}

		rel, err := relativeTarget(root, path, target)
		if err != nil {
			return fmt.Errorf("relocating link %q: %w", path, err)
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing link %q: %w", path, err)
		}
		if err := os.Symlink(rel, path); err != nil {
			return fmt.Errorf("recreating link %q -> %q: %w", path, rel, err)
		}
		return nil
	})
}

// relativeTarget rewrites an absolute symlink target as seen from inside
// the sysroot (so "/usr/lib/libc.so" becomes "usr/lib/libc.so" relative to
// root) into a path relative to the symlink's own directory.
func relativeTarget(root, linkPath, absTarget string) (string, error) {
	withinRoot := strings.TrimPrefix(absTarget, "/")
	linkDir := filepath.Dir(linkPath)
	return filepath.Rel(linkDir, filepath.Join(root, withinRoot))
}
