// Package bootstrap orchestrates components A-H into the fetch/verify/
// resolve/unpack/relocate pipeline described by spec.md: given a suite,
// architecture, and target directory, it produces a relocatable sysroot.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/sirupsen/logrus"

	"github.com/sysroot-tools/sysroot-bootstrap/internal/archive"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/control"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/fetch"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/install"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/keyring"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/relocate"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/resolve"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/verify"
)

// Request is a validated bootstrap run: everything the orchestrator needs
// and nothing it has to guess at. Building one is the CLI layer's job.
type Request struct {
	Suite           string
	Arch            string
	Target          string
	Include         []string
	ExcludeRequired bool

	// ScratchRoot holds fetched artifacts for the duration of the run. If
	// empty, a temporary directory is created and removed when Run
	// returns, whether the run succeeded or failed.
	ScratchRoot string
	// Mirror overrides the arch-derived mirror, mainly for tests.
	Mirror string
	// Parallel bounds concurrent package installs; see install.Installer.
	Parallel int
}

// Run executes the full pipeline for req, logging progress to log. Every
// error returned is a *FatalError.
func Run(ctx context.Context, req Request, log *logrus.Logger) error {
	scratch := req.ScratchRoot
	if scratch == "" {
		dir, err := os.MkdirTemp("", "sysroot-bootstrap-")
		if err != nil {
			return Fatal(Environment, fmt.Errorf("creating scratch directory: %w", err))
		}
		scratch = dir
		defer os.RemoveAll(scratch)
	}

	mirror := req.Mirror
	if mirror == "" {
		mirror = mirrorForArch(req.Arch)
	}

	f := fetch.New(scratch)

	keyringPath, err := keyring.Provision(ctx, req.Suite, f, scratch)
	if err != nil {
		kind := Input
		if _, known := keyring.Lookup(req.Suite); known {
			kind = Format
			if strings.Contains(err.Error(), "fetching keyring source") {
				kind = Transport
			}
		}
		return Fatal(kind, fmt.Errorf("provisioning keyring: %w", err))
	}
	keyringFile, err := os.Open(keyringPath)
	if err != nil {
		return Fatal(Environment, fmt.Errorf("opening keyring: %w", err))
	}
	defer keyringFile.Close()
	keys, err := verify.LoadKeyring(keyringFile)
	if err != nil {
		return Fatal(Format, fmt.Errorf("parsing keyring: %w", err))
	}
	emit(log, eventKeyringProvisioned{Suite: req.Suite, Path: keyringPath})

	releaseIdx, err := fetchRelease(ctx, mirror, req.Suite, f, keys)
	if err != nil {
		return err
	}
	emit(log, eventReleaseVerified{Suite: req.Suite})

	packagesIdx, err := fetchPackages(ctx, mirror, req.Suite, req.Arch, f, releaseIdx)
	if err != nil {
		return err
	}
	emit(log, eventPackagesIndexed{Count: len(packagesIdx.RequiredNames())})

	seeds := append([]string(nil), req.Include...)
	if !req.ExcludeRequired {
		seeds = append(seeds, packagesIdx.RequiredNames()...)
	}
	names := resolve.Resolve(seeds, packagesIdx)
	emit(log, eventResolved{Count: len(names)})

	if len(names) == 0 {
		emit(log, eventNothingToInstall{})
		return nil
	}

	if err := os.MkdirAll(req.Target, 0o755); err != nil {
		return Fatal(Environment, fmt.Errorf("creating target %q: %w", req.Target, err))
	}

	installer := &install.Installer{
		Mirror:      mirror,
		Fetcher:     f,
		Packages:    packagesIdx,
		SysrootRoot: req.Target,
		Parallel:    req.Parallel,
	}
	if err := installer.InstallAll(ctx, names, log); err != nil {
		return Fatal(classifyInstallError(err), err)
	}

	if err := relocate.Relocate(req.Target); err != nil {
		return Fatal(Environment, fmt.Errorf("relocating symlinks: %w", err))
	}
	emit(log, eventRelocated{Sysroot: req.Target})

	return nil
}

func fetchRelease(ctx context.Context, mirror, suite string, f *fetch.Fetcher, keys openpgp.EntityList) (*control.ReleaseIndex, error) {
	releaseURL := mirror + "/dists/" + suite + "/Release"
	sigURL := mirror + "/dists/" + suite + "/Release.gpg"

	releasePath, err := f.Fetch(ctx, releaseURL)
	if err != nil {
		return nil, Fatal(Transport, fmt.Errorf("fetching Release: %w", err))
	}
	sigPath, err := f.Fetch(ctx, sigURL)
	if err != nil {
		return nil, Fatal(Transport, fmt.Errorf("fetching Release.gpg: %w", err))
	}

	releaseFile, err := os.Open(releasePath)
	if err != nil {
		return nil, Fatal(Environment, fmt.Errorf("opening Release: %w", err))
	}
	defer releaseFile.Close()
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return nil, Fatal(Environment, fmt.Errorf("opening Release.gpg: %w", err))
	}
	defer sigFile.Close()

	if err := verify.DetachedSignature(releaseFile, sigFile, keys); err != nil {
		return nil, Fatal(Integrity, fmt.Errorf("verifying Release signature: %w", err))
	}

	releaseFile2, err := os.Open(releasePath)
	if err != nil {
		return nil, Fatal(Environment, fmt.Errorf("re-opening Release: %w", err))
	}
	defer releaseFile2.Close()
	idx, err := control.ParseRelease(releaseFile2)
	if err != nil {
		return nil, Fatal(Format, fmt.Errorf("parsing Release: %w", err))
	}
	return idx, nil
}

func fetchPackages(ctx context.Context, mirror, suite, arch string, f *fetch.Fetcher, releaseIdx *control.ReleaseIndex) (*control.PackagesIndex, error) {
	relPath := "main/binary-" + arch + "/Packages.gz"
	expectedSHA256, ok := releaseIdx.SHA256For(relPath)
	if !ok {
		return nil, Fatal(Format, fmt.Errorf("Release index has no entry for %q", relPath))
	}

	packagesURL := mirror + "/dists/" + suite + "/" + relPath
	packagesPath, err := f.Fetch(ctx, packagesURL)
	if err != nil {
		return nil, Fatal(Transport, fmt.Errorf("fetching Packages.gz: %w", err))
	}

	pf, err := os.Open(packagesPath)
	if err != nil {
		return nil, Fatal(Environment, fmt.Errorf("opening Packages.gz: %w", err))
	}
	defer pf.Close()
	if err := verify.SHA256(pf, expectedSHA256); err != nil {
		return nil, Fatal(Integrity, fmt.Errorf("verifying Packages.gz: %w", err))
	}

	pf2, err := os.Open(packagesPath)
	if err != nil {
		return nil, Fatal(Environment, fmt.Errorf("re-opening Packages.gz: %w", err))
	}
	defer pf2.Close()
	raw, err := archive.Decompress(pf2, "Packages.gz")
	if err != nil {
		return nil, Fatal(Format, fmt.Errorf("decompressing Packages.gz: %w", err))
	}
	idx, err := control.ParsePackages(raw)
	if err != nil {
		return nil, Fatal(Format, fmt.Errorf("parsing Packages: %w", err))
	}
	return idx, nil
}

// classifyInstallError picks a Kind for an install.Installer failure by
// sniffing the wrapped message, since InstallAll itself returns plain
// errors (it has no dependency on the bootstrap package).
func classifyInstallError(err error) Kind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "sha256 mismatch"):
		return Integrity
	case strings.Contains(msg, "fetching"):
		return Transport
	case strings.Contains(msg, "no Filename field"), strings.Contains(msg, "no SHA256 field"),
		strings.Contains(msg, "reading ar archive"), strings.Contains(msg, "data.tar member"),
		strings.Contains(msg, "decompressing"), strings.Contains(msg, "reading tar header"):
		return Format
	default:
		return Environment
	}
}
