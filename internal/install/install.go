// Package install fetches and unpacks resolved packages into a sysroot.
package install

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sysroot-tools/sysroot-bootstrap/internal/archive"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/control"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/fetch"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/verify"
)

// Installer unpacks resolved packages from Mirror into SysrootRoot, using
// Packages to resolve each name's Filename and SHA256.
type Installer struct {
	Mirror      string
	Fetcher     *fetch.Fetcher
	Packages    *control.PackagesIndex
	SysrootRoot string

	// Parallel bounds how many packages are fetched+unpacked concurrently.
	// 0 or 1 means sequential, matching spec §5's single-threaded core;
	// higher values trade determinism of log-interleaving for wall-clock
	// time on large dependency sets.
	Parallel int
}

// InstallAll fetches and unpacks every named package into SysrootRoot, in
// the given order. A missing Filename/SHA256 field, checksum mismatch, or
// archive format error aborts the whole run (spec §4.G, §7 error model).
func (ins *Installer) InstallAll(ctx context.Context, names []string, log *logrus.Logger) error {
	parallel := ins.Parallel
	if parallel < 1 {
		parallel = 1
	}

	sem := make(chan struct{}, parallel)
	errCh := make(chan error, len(names))
	// turns[i] is closed once package i-1 is done, so tar extraction runs
	// in the given order even when fetches overlap.
	turns := make([]chan struct{}, len(names)+1)
	for i := range turns {
		turns[i] = make(chan struct{})
	}
	close(turns[0])
	for i, name := range names {
		name, wait, done := name, turns[i], turns[i+1]
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			errCh <- ins.installOne(ctx, name, wait, done, log)
		}()
	}
	for range names {
		if err := <-errCh; err != nil {
			return err
		}
	}
	return nil
}

func (ins *Installer) installOne(ctx context.Context, name string, wait <-chan struct{}, done chan<- struct{}, log *logrus.Logger) error {
	defer func() {
		<-wait
		close(done)
	}()

	filename := ins.Packages.Field(name, control.FieldFilename)
	if filename == "" {
		return fmt.Errorf("package %q: no Filename field in index", name)
	}
	expectedSHA256 := ins.Packages.Field(name, control.FieldSHA256)
	if expectedSHA256 == "" {
		return fmt.Errorf("package %q: no SHA256 field in index", name)
	}

	debURL := ins.Mirror + "/" + filename
	localPath, err := ins.Fetcher.Fetch(ctx, debURL)
	if err != nil {
		return fmt.Errorf("fetching %q: %w", name, err)
	}

	if err := verifyChecksum(localPath, expectedSHA256); err != nil {
		return fmt.Errorf("package %q: %w", name, err)
	}

	deb, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %q: %w", localPath, err)
	}
	defer deb.Close()

	arMembers, err := archive.ReadAr(deb)
	if err != nil {
		return fmt.Errorf("package %q: reading ar archive: %w", name, err)
	}

	dataMember, err := archive.DataTarMember(arMembers)
	if err != nil {
		return fmt.Errorf("package %q: %w", name, err)
	}

	tarStream, err := archive.Decompress(bytes.NewReader(dataMember.Data), dataMember.Name)
	if err != nil {
		return fmt.Errorf("package %q: decompressing %q: %w", name, dataMember.Name, err)
	}

	<-wait
	if err := archive.ExtractTar(tarStream, ins.SysrootRoot); err != nil {
		return fmt.Errorf("package %q: unpacking into sysroot: %w", name, err)
	}

	log.WithField("package", name).Info("package unpacked")
	return nil
}

func verifyChecksum(path, expectedHex string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	return verify.SHA256(f, expectedHex)
}
